package projection

import "github.com/gridironlab/dynasty/player"

// Static is a fixed table of distributions, typically loaded from a
// projections CSV (see dataloaders).
type Static struct {
	table map[string]Dist
}

func NewStatic(table map[string]Dist) *Static {
	return &Static{table: table}
}

func (s *Static) Weekly(p *player.Player) (Dist, bool) {
	d, ok := s.table[p.ID]
	return d, ok
}

// Set overrides or adds one player's distribution.
func (s *Static) Set(id string, d Dist) {
	if s.table == nil {
		s.table = map[string]Dist{}
	}
	s.table[id] = d
}

func (s *Static) Len() int {
	return len(s.table)
}
