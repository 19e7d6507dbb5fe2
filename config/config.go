// Package config holds runtime configuration, loaded from flags with
// environment-variable overrides (prefix DYNASTY, e.g. DYNASTY_DATA_PATH).
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	v    *viper.Viper
	args []string
}

func defaultFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dynasty", pflag.ContinueOnError)
	fs.String("data-path", "./data", "directory holding player, projection, and ADP files")
	fs.String("db-path", "./dynasty.db", "path to the sqlite database")
	fs.String("scoring", "ppr", "scoring preset: standard, half-ppr, ppr, superflex-tep")
	fs.Int("teams", 12, "number of teams in the league")
	fs.Int("weeks", 14, "regular season weeks")
	fs.Int("playoff-teams", 6, "teams that make the playoffs")
	fs.Int("sim-threads", 0, "simulation threads; 0 means one per CPU")
	fs.Int("sim-iteration-cutoff", 0, "hard iteration cap for autostopped sims; 0 keeps the default")
	fs.String("nats-url", "nats://127.0.0.1:4222", "NATS server URL for the eval responder")
	fs.Bool("debug", false, "debug logging")
	fs.String("cpu-profile", "", "write a CPU profile to this path")
	fs.String("mem-profile", "", "write a memory profile to this path")
	return fs
}

func (c *Config) Load(args []string) error {
	fs := defaultFlagSet()
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	c.v = viper.New()
	if err := c.v.BindPFlags(fs); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	c.v.SetEnvPrefix("dynasty")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	c.args = fs.Args()
	return nil
}

// Args returns the non-flag arguments left over after parsing, used for
// one-shot command execution.
func (c *Config) Args() []string {
	return c.args
}

// DefaultConfig is mostly for tests; it loads with no arguments and panics
// on the (impossible) parse failure.
func DefaultConfig() *Config {
	c := &Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// SanitizedSettings returns the settings for startup logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.v.AllSettings()
}

// AdjustRelativePaths rebases relative path settings onto the executable's
// directory, so the binary finds its data files no matter where it is
// invoked from.
func (c *Config) AdjustRelativePaths(exPath string) {
	for _, key := range []string{"data-path", "db-path"} {
		p := c.v.GetString(key)
		if p != "" && !filepath.IsAbs(p) {
			c.v.Set(key, filepath.Join(exPath, p))
		}
	}
}
