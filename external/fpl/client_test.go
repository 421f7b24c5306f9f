package fpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/riskibarqy/fpl-advisor/internal/platform/resilience"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

const bootstrapBody = `{
  "elements": [
    {"id": 1, "web_name": "Raya", "element_type": 1, "team": 1, "now_cost": 55, "form": "5.5", "total_points": 60},
    {"id": 2, "web_name": "Haaland", "element_type": 4, "team": 2, "now_cost": 145, "form": "8.0", "total_points": 120},
    {"id": 3, "web_name": "Mbeumo", "element_type": 3, "team": 3, "now_cost": 80, "form": "", "total_points": 70},
    {"id": 4, "web_name": "Manager", "element_type": 5, "team": 1, "now_cost": 10, "form": "0.0", "total_points": 0}
  ],
  "teams": [
    {"id": 1, "name": "Arsenal", "strength_overall_home": 1350, "strength_overall_away": 1300},
    {"id": 2, "name": "Man City", "strength_overall_home": 1320, "strength_overall_away": 1290},
    {"id": 3, "name": "Brentford", "strength_overall_home": 1100, "strength_overall_away": 1050}
  ],
  "events": [
    {"id": 8, "deadline_time_epoch": 1760000000},
    {"id": 9, "deadline_time_epoch": 1761000000},
    {"id": 10, "deadline_time_epoch": 1762000000}
  ]
}`

const fixturesBody = `[
  {"id": 71, "event": 9, "team_h": 1, "team_a": 2, "team_h_difficulty": 4, "team_a_difficulty": 4, "kickoff_time": "2025-10-25T16:30:00Z"}
]`

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:      baseURL,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
	})
}

func TestClient_Roster(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"/bootstrap-static/": bootstrapBody,
		"/fixtures/":         fixturesBody,
	})
	client := newTestClient(server.URL)

	roster, err := client.Roster(context.Background(), 9)
	if err != nil {
		t.Fatalf("Roster error: %v", err)
	}
	if roster.Len() != 3 {
		t.Fatalf("expected 3 players without the manager element, got %d", roster.Len())
	}

	raya, _ := roster.Get(1)
	if raya.Position != asset.PositionGoalkeeper || raya.Form != 5.5 || raya.TeamName != "Arsenal" {
		t.Fatalf("unexpected goalkeeper mapping: %+v", raya)
	}
	if raya.FixtureDiff != 60 {
		t.Fatalf("expected home diff 1350-1290=60, got %v", raya.FixtureDiff)
	}

	haaland, _ := roster.Get(2)
	if haaland.FixtureDiff != -60 {
		t.Fatalf("expected away diff -60, got %v", haaland.FixtureDiff)
	}

	mbeumo, _ := roster.Get(3)
	if mbeumo.Form != 0 {
		t.Fatalf("expected empty form to default to 0, got %v", mbeumo.Form)
	}
	if mbeumo.FixtureDiff != 0 {
		t.Fatalf("expected blank gameweek diff 0, got %v", mbeumo.FixtureDiff)
	}
}

func TestClient_SquadReadsPreviousGameweekPicks(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"/entry/77/event/8/picks/": `{"picks": [
			{"element": 1, "position": 1, "is_captain": false, "is_vice_captain": true},
			{"element": 2, "position": 2, "is_captain": true, "is_vice_captain": false}
		]}`,
	})
	client := newTestClient(server.URL)

	squad, err := client.Squad(context.Background(), 77, 9)
	if err != nil {
		t.Fatalf("Squad error: %v", err)
	}
	if len(squad.AssetIDs) != 2 || squad.CaptainID != 2 || squad.ViceCaptainID != 1 || squad.Gameweek != 9 {
		t.Fatalf("unexpected squad: %+v", squad)
	}
}

func TestPicksGameweek(t *testing.T) {
	t.Parallel()

	if got := PicksGameweek(1); got != 1 {
		t.Fatalf("expected gw1 picks for gw1, got %d", got)
	}
	if got := PicksGameweek(10); got != 9 {
		t.Fatalf("expected gw9 picks for gw10, got %d", got)
	}
}

func TestClient_Manager(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{
		"/entry/77/": `{"id": 77, "name": "Bloggs XI", "player_first_name": "Jo", "player_last_name": "Bloggs",
			"summary_overall_rank": 12345, "summary_overall_points": 456, "summary_event_points": 61, "last_deadline_value": 1012}`,
	})
	client := newTestClient(server.URL)

	got, err := client.Manager(context.Background(), 77)
	if err != nil {
		t.Fatalf("Manager error: %v", err)
	}
	if got.ManagerName != "Jo Bloggs" || got.TeamName != "Bloggs XI" || got.OverallRank != 12345 || got.TeamValue != 1012 {
		t.Fatalf("unexpected manager summary: %+v", got)
	}
}

func TestClient_NextGameweek(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, map[string]string{"/bootstrap-static/": bootstrapBody})
	client := newTestClient(server.URL)
	client.now = func() time.Time { return time.Unix(1760500000, 0) }

	got, err := client.NextGameweek(context.Background())
	if err != nil {
		t.Fatalf("NextGameweek error: %v", err)
	}
	if got != 9 {
		t.Fatalf("expected gameweek 9, got %d", got)
	}

	client.now = func() time.Time { return time.Unix(1770000000, 0) }
	got, err = client.NextGameweek(context.Background())
	if err != nil || got != 0 {
		t.Fatalf("expected 0 after the last deadline, got %d err=%v", got, err)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("the game is being updated"))
			return
		}
		_, _ = w.Write([]byte(bootstrapBody))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server.URL)
	if _, err := client.NextGameweek(context.Background()); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server.URL)
	_, err := client.Manager(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.NextGameweek(context.Background()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := client.NextGameweek(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit to return ErrDependencyUnavailable, got %v", err)
	}
}
