package fixture

import "testing"

func TestTeamDifficulty(t *testing.T) {
	items := []Fixture{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeStrength: 1300, AwayStrength: 1100},
		{ID: 2, HomeTeamID: 3, AwayTeamID: 1, HomeStrength: 1250, AwayStrength: 1150},
	}

	got := TeamDifficulty(items)

	if got[1] != 50 {
		t.Fatalf("expected double gameweek mean 50 for team 1, got %v", got[1])
	}
	if got[2] != -200 {
		t.Fatalf("expected -200 for team 2, got %v", got[2])
	}
	if got[3] != 100 {
		t.Fatalf("expected 100 for team 3, got %v", got[3])
	}
	if _, ok := got[4]; ok {
		t.Fatalf("blank gameweek team must be absent")
	}
}
