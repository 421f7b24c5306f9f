package fpl

type bootstrapPayload struct {
	Elements []elementPayload `json:"elements"`
	Teams    []teamPayload    `json:"teams"`
	Events   []eventPayload   `json:"events"`
}

type elementPayload struct {
	ID          int64  `json:"id"`
	WebName     string `json:"web_name"`
	ElementType int    `json:"element_type"`
	Team        int64  `json:"team"`
	NowCost     int64  `json:"now_cost"`
	// form arrives as a decimal string, e.g. "5.2".
	Form        any `json:"form"`
	TotalPoints int `json:"total_points"`
}

type teamPayload struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
}

type eventPayload struct {
	ID                int   `json:"id"`
	DeadlineTimeEpoch int64 `json:"deadline_time_epoch"`
	IsCurrent         bool  `json:"is_current"`
	IsNext            bool  `json:"is_next"`
	Finished          bool  `json:"finished"`
}

type fixturePayload struct {
	ID              int64  `json:"id"`
	Event           *int   `json:"event"`
	TeamH           int64  `json:"team_h"`
	TeamA           int64  `json:"team_a"`
	TeamHDifficulty int    `json:"team_h_difficulty"`
	TeamADifficulty int    `json:"team_a_difficulty"`
	KickoffTime     string `json:"kickoff_time"`
}

type entryPayload struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	PlayerFirstName      string `json:"player_first_name"`
	PlayerLastName       string `json:"player_last_name"`
	SummaryOverallRank   int64  `json:"summary_overall_rank"`
	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryEventPoints   int    `json:"summary_event_points"`
	LastDeadlineValue    int64  `json:"last_deadline_value"`
}

type picksPayload struct {
	Picks []pickPayload `json:"picks"`
}

type pickPayload struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}
