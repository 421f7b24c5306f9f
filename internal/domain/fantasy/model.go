package fantasy

import (
	"context"
	"fmt"
)

// Squad is the ordered list of asset ids an account holds for one gameweek.
type Squad struct {
	AccountID     int64
	Gameweek      int
	AssetIDs      []int64
	CaptainID     int64
	ViceCaptainID int64
}

func (s Squad) ValidateBasic() error {
	if s.AccountID <= 0 {
		return fmt.Errorf("account id must be greater than zero")
	}
	if len(s.AssetIDs) == 0 {
		return fmt.Errorf("squad asset ids are required")
	}

	return nil
}

// SquadProvider returns the squad an account held going into a gameweek.
type SquadProvider interface {
	Squad(ctx context.Context, accountID int64, gameweek int) (Squad, error)
}

// GameweekResolver reports the next gameweek whose deadline has not passed.
type GameweekResolver interface {
	NextGameweek(ctx context.Context) (int, error)
}
