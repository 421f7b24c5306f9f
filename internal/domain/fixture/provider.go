package fixture

import "context"

// Provider returns the fixture slate of a gameweek.
type Provider interface {
	Fixtures(ctx context.Context, gameweek int) ([]Fixture, error)
}
