package fpl

import (
	"context"
	"fmt"
	"sort"
)

// NextGameweek returns the first event whose deadline is still ahead.
// It returns 0 once the season's last deadline has passed.
func (c *Client) NextGameweek(ctx context.Context) (int, error) {
	boot, err := c.bootstrap(ctx)
	if err != nil {
		return 0, err
	}
	if len(boot.Events) == 0 {
		return 0, fmt.Errorf("bootstrap-static has no events")
	}

	events := append([]eventPayload(nil), boot.Events...)
	sort.Slice(events, func(i, j int) bool { return events[i].DeadlineTimeEpoch < events[j].DeadlineTimeEpoch })

	now := c.now().Unix()
	for _, event := range events {
		if event.DeadlineTimeEpoch > now {
			return event.ID, nil
		}
	}
	return 0, nil
}
