package asset

import (
	"context"
	"sort"
)

// Roster is a consistent snapshot of every eligible asset for one gameweek.
type Roster struct {
	Gameweek int
	Assets   map[int64]Asset
}

func NewRoster(gameweek int, assets []Asset) Roster {
	byID := make(map[int64]Asset, len(assets))
	for _, item := range assets {
		byID[item.ID] = item
	}
	return Roster{Gameweek: gameweek, Assets: byID}
}

func (r Roster) Len() int {
	return len(r.Assets)
}

func (r Roster) Get(id int64) (Asset, bool) {
	item, ok := r.Assets[id]
	return item, ok
}

// Lookup resolves ids in order and reports the ids missing from the roster.
func (r Roster) Lookup(ids []int64) ([]Asset, []int64) {
	out := make([]Asset, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		item, ok := r.Assets[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, item)
	}
	return out, missing
}

// Candidates returns roster assets not present in exclude, ordered by id.
func (r Roster) Candidates(exclude map[int64]struct{}) []Asset {
	out := make([]Asset, 0, len(r.Assets))
	for id, item := range r.Assets {
		if _, skip := exclude[id]; skip {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Sorted returns all assets ordered by id.
func (r Roster) Sorted() []Asset {
	return r.Candidates(nil)
}

// RosterProvider returns the asset snapshot for a gameweek.
type RosterProvider interface {
	Roster(ctx context.Context, gameweek int) (Roster, error)
}
