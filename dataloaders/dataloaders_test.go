package dataloaders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"

	"github.com/gridironlab/dynasty/config"
	"github.com/gridironlab/dynasty/player"
)

func TestParsePlayersCSV(t *testing.T) {
	is := is.New(t)
	f, err := os.Open("testdata/players.csv")
	is.NoErr(err)
	defer f.Close()

	players, err := ParsePlayersCSV(f)
	is.NoErr(err)
	is.Equal(len(players), 4)
	is.Equal(players[0].ID, "jchase")
	is.Equal(players[0].Pos, player.WR)
	is.Equal(players[1].MarketValue, 9800.0)
	is.Equal(players[2].ADP, 0.0) // empty column
	is.True(players[2].TaxiEligible())
	is.True(!players[3].TaxiEligible())
}

func TestParsePlayersCSVErrors(t *testing.T) {
	is := is.New(t)
	_, err := ParsePlayersCSV(strings.NewReader("wrong,header\n"))
	is.True(err != nil)

	bad := "id,name,team,pos,age,exp,adp,market_value\n" +
		"x,X,KC,LB,25,2,,\n"
	_, err = ParsePlayersCSV(strings.NewReader(bad))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "line 2"))

	bad = "id,name,team,pos,age,exp,adp,market_value\n" +
		"x,X,KC,WR,twenty,2,,\n"
	_, err = ParsePlayersCSV(strings.NewReader(bad))
	is.True(err != nil)
}

func TestParseProjectionsCSV(t *testing.T) {
	is := is.New(t)
	f, err := os.Open("testdata/projections.csv")
	is.NoErr(err)
	defer f.Close()

	src, err := ParseProjectionsCSV(f)
	is.NoErr(err)
	is.Equal(src.Len(), 4)
	d, ok := src.Weekly(&player.Player{ID: "jchase"})
	is.True(ok)
	is.Equal(d.Mean, 19.4)
	is.Equal(d.PlayProb, 0.97)
	is.Equal(d.Rec, 5.8)
	d, ok = src.Weekly(&player.Player{ID: "bobinson"})
	is.True(ok)
	is.Equal(d.PlayProb, 0.0) // empty means always plays
	d, _ = src.Weekly(&player.Player{ID: "old-qb"})
	is.Equal(d.Rec, 0.0) // empty rec column

	bad := "player_id,mean,stdev,play_prob,rec\nx,10,5,1.5,4\n"
	_, err = ParseProjectionsCSV(strings.NewReader(bad))
	is.True(err != nil)

	bad = "player_id,mean,stdev,play_prob,rec\nx,10,5,0.9,-1\n"
	_, err = ParseProjectionsCSV(strings.NewReader(bad))
	is.True(err != nil)
}

func TestLoadPlayerPoolCaches(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set("data-path", "testdata")

	pool, err := LoadPlayerPool(cfg)
	is.NoErr(err)
	is.Equal(pool.Len(), 4)

	// Second load returns the same cached object.
	again, err := LoadPlayerPool(cfg)
	is.NoErr(err)
	is.True(pool == again)
}

func TestLoadPlayerPoolReload(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	orig, err := os.ReadFile("testdata/players.csv")
	is.NoErr(err)
	path := filepath.Join(dir, "players.csv")
	is.NoErr(os.WriteFile(path, orig, 0o644))

	cfg := config.DefaultConfig()
	cfg.Set("data-path", dir)

	pool, err := LoadPlayerPool(cfg)
	is.NoErr(err)
	is.Equal(pool.Len(), 4)

	// Editing the file changes the fingerprint; the next load parses the new
	// contents and evicts the stale cache entry.
	extra := append(orig, []byte("extra,Extra Guy,DAL,RB,24,2,50,100\n")...)
	is.NoErr(os.WriteFile(path, extra, 0o644))

	reloaded, err := LoadPlayerPool(cfg)
	is.NoErr(err)
	is.Equal(reloaded.Len(), 5)
	is.True(pool != reloaded)
}

func TestFetchADPRetries(t *testing.T) {
	is := is.New(t)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"player_id":"jchase","adp":1.3},{"player_id":"ghost","adp":99}]`))
	}))
	defer srv.Close()

	adp, err := FetchADP(context.Background(), srv.Client(), srv.URL)
	is.NoErr(err)
	is.Equal(atomic.LoadInt32(&calls), int32(3))
	is.Equal(adp["jchase"], 1.3)

	pool, err := player.NewPool([]*player.Player{
		{ID: "jchase", Name: "Chase", Pos: player.WR},
	})
	is.NoErr(err)
	updated := ApplyADP(pool, adp)
	is.Equal(updated, 1)
	p, _ := pool.Get("jchase")
	is.Equal(p.ADP, 1.3)
}

func TestFetchADPUnrecoverableJSON(t *testing.T) {
	is := is.New(t)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := FetchADP(context.Background(), srv.Client(), srv.URL)
	is.True(err != nil)
	is.Equal(atomic.LoadInt32(&calls), int32(1)) // no retry on a decode failure
}
