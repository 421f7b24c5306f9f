package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{
			name:   "no candidate",
			err:    fmt.Errorf("select: %w", &recommendation.NoCandidateError{Constraint: recommendation.ConstraintAllTeamsSaturated}),
			status: http.StatusUnprocessableEntity,
			reason: "noCandidate:all_teams_saturated",
		},
		{
			name:   "malformed squad",
			err:    fantasy.NewMalformedSquadError("size", "squad has %d assets", 14),
			status: http.StatusUnprocessableEntity,
			reason: "malformedSquad",
		},
		{
			name:   "data unavailable",
			err:    &usecase.DataUnavailableError{Source: usecase.SourceFixtures, Gameweek: 3},
			status: http.StatusServiceUnavailable,
			reason: "dataUnavailable",
		},
		{
			name:   "dependency unavailable",
			err:    fmt.Errorf("%w: redis down", usecase.ErrDependencyUnavailable),
			status: http.StatusServiceUnavailable,
			reason: "dependencyUnavailable",
		},
		{
			name:   "unknown",
			err:    fmt.Errorf("boom"),
			status: http.StatusInternalServerError,
			reason: "internalError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if got.HTTPStatus != tt.status || got.Reason != tt.reason {
				t.Fatalf("mapError()=%d/%s want=%d/%s", got.HTTPStatus, got.Reason, tt.status, tt.reason)
			}
		})
	}
}
