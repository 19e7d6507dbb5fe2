package dataloaders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/gridironlab/dynasty/player"
)

// adpEntry is one row of the ADP feed.
type adpEntry struct {
	PlayerID string  `json:"player_id"`
	ADP      float64 `json:"adp"`
}

// FetchADP pulls current ADP from an HTTP JSON feed, retrying transient
// failures with backoff.
func FetchADP(ctx context.Context, client *http.Client, url string) (map[string]float64, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	var entries []adpEntry
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return fmt.Errorf("adp feed returned %s", resp.Status)
			}
			entries = entries[:0]
			if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decoding adp feed: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(4),
		retry.Delay(250*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Msg("retrying adp fetch")
		}),
	)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(entries))
	for _, e := range entries {
		out[e.PlayerID] = e.ADP
	}
	return out, nil
}

// ApplyADP overwrites pool players' ADP from a feed result and returns how
// many players were updated.
func ApplyADP(pool *player.Pool, adp map[string]float64) int {
	updated := 0
	for id, v := range adp {
		if p, ok := pool.Get(id); ok {
			p.ADP = v
			updated++
		}
	}
	return updated
}
