package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fpl-advisor"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var (
	errInternal = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

	// Checked in order; domain failures come before the generic usecase
	// sentinels they may also wrap.
	sentinelErrors = []struct {
		target error
		mapped mappedError
	}{
		{fantasy.ErrMalformedSquad, mappedError{http.StatusUnprocessableEntity, "malformedSquad", "FAILED_PRECONDITION"}},
		{usecase.ErrDataUnavailable, mappedError{http.StatusServiceUnavailable, "dataUnavailable", "UNAVAILABLE"}},
		{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
		{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
		{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
		{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	}
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(_ context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	writeJSON(w, mapped.HTTPStatus, errorEnvelope(mapped, err.Error()))
}

// writeInternalError hides the cause; it is used after a recovered panic.
func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorEnvelope(errInternal, "internal server error"))
}

func errorEnvelope(mapped mappedError, message string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: message,
			}},
		},
	}
}

func mapError(err error) mappedError {
	var noCandidate *recommendation.NoCandidateError
	if errors.As(err, &noCandidate) {
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "noCandidate:" + string(noCandidate.Constraint),
			Status:     "FAILED_PRECONDITION",
		}
	}
	for _, rule := range sentinelErrors {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return errInternal
}
