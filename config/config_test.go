package config

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString("scoring"), "ppr")
	is.Equal(c.GetInt("teams"), 12)
	is.Equal(c.GetBool("debug"), false)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--scoring", "superflex-tep", "--debug", "--teams=10"}))
	is.Equal(c.GetString("scoring"), "superflex-tep")
	is.Equal(c.GetBool("debug"), true)
	is.Equal(c.GetInt("teams"), 10)
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("DYNASTY_SCORING", "half-ppr")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString("scoring"), "half-ppr")
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--data-path", "data", "--db-path", "/abs/dynasty.db"}))
	c.AdjustRelativePaths("/opt/dynasty")
	is.Equal(c.GetString("data-path"), filepath.Join("/opt/dynasty", "data"))
	is.Equal(c.GetString("db-path"), "/abs/dynasty.db")
}
