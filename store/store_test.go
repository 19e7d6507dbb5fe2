package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlab/dynasty/player"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadPlayers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	players := []*player.Player{
		{ID: "a", Name: "Alpha", Team: "KC", Pos: player.WR, Age: 25, Experience: 3, ADP: 5},
		{ID: "b", Name: "Beta", Team: "SF", Pos: player.RB, Age: 23, Experience: 1, ADP: 2},
		{ID: "c", Name: "Gamma", Team: "DAL", Pos: player.TE, Age: 27, Experience: 5},
	}
	require.NoError(t, s.SavePlayers(ctx, players))

	got, err := s.LoadPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID) // ADP order, unranked last
	assert.Equal(t, "c", got[2].ID)
	assert.Equal(t, player.RB, got[0].Pos)

	// Upsert updates in place.
	players[0].ADP = 1
	require.NoError(t, s.SavePlayers(ctx, players[:1]))
	got, err = s.LoadPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
}

func TestSimRunHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.RecordSimRun(ctx, SimRun{
			RanAt:       base.Add(time.Duration(i) * time.Hour),
			Scenario:    "stand pat",
			Iterations:  uint64(1000 * (i + 1)),
			Seed:        42,
			TitleProb:   0.1 * float64(i+1),
			PlayoffProb: 0.5,
			MeanWins:    7.5,
		})
		require.NoError(t, err)
	}

	runs, err := s.ListSimRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].RanAt.After(runs[1].RanAt), "newest first")
	assert.Equal(t, uint64(3000), runs[0].Iterations)
	assert.Equal(t, uint64(42), runs[0].Seed)

	runs, err = s.ListSimRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
