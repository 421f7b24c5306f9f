package httpapi

import (
	"net/http"
	"runtime/debug"

	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

type route struct {
	pattern  string
	handler  http.HandlerFunc
	internal bool
}

func routes(h *Handler) []route {
	return []route{
		{pattern: "GET /healthz", handler: h.Healthz},
		{pattern: "POST /v1/recommendations", handler: h.CreateRecommendation},
		{pattern: "GET /v1/accounts/{accountID}/gameweeks/{gameweek}/recommendation", handler: h.GetLatestRecommendation},
		{pattern: "POST /v1/assets/scores", handler: h.ScoreAssets},
		{pattern: "POST /v1/internal/recommendations/batch", handler: h.RunRecommendationBatch, internal: true},
		{pattern: "POST /v1/internal/jobs/snapshot", handler: h.RunSnapshotJob, internal: true},
	}
}

// NewRouter mounts every route; internal ones require internalJobToken.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, rt := range routes(handler) {
		var h http.Handler = rt.handler
		if rt.internal {
			h = RequireInternalJobToken(internalJobToken, h)
		}
		mux.Handle(rt.pattern, h)
	}

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
