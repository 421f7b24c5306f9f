package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/fpl-advisor/internal/config"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Runtime owns the process-wide tracing, profiling and pprof listeners.
type Runtime struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Start brings up whichever of uptrace, pyroscope and pprof cfg enables.
// On error everything already started is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	if cfg.UptraceEnabled && cfg.UptraceDSN != "" {
		uptrace.ConfigureOpentelemetry(
			uptrace.WithDSN(cfg.UptraceDSN),
			uptrace.WithServiceName(cfg.ServiceName),
			uptrace.WithServiceVersion(cfg.ServiceVersion),
			uptrace.WithDeploymentEnvironment(cfg.AppEnv),
			uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		)
		rt.tracing = true
	}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(profilerConfig(cfg))
		if err != nil {
			_ = rt.Shutdown(context.Background())
			return nil, fmt.Errorf("start pyroscope: %w", err)
		}
		rt.profiler = profiler
	}

	if cfg.PprofEnabled {
		rt.pprof = servePprof(cfg.PprofAddr, logger)
	}

	logger.Info("observability started",
		"uptrace", rt.tracing,
		"pyroscope", rt.profiler != nil,
		"pprof", rt.pprof != nil,
		"roster_source", cfg.RosterSource,
	)
	return rt, nil
}

// Shutdown stops pprof first and flushes traces last.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt == nil {
		return nil
	}
	var errs []error
	if rt.pprof != nil {
		if err := rt.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pprof shutdown: %w", err))
		}
		rt.pprof = nil
	}
	if rt.profiler != nil {
		if err := rt.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("pyroscope stop: %w", err))
		}
		rt.profiler = nil
	}
	if rt.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("uptrace shutdown: %w", err))
		}
		rt.tracing = false
	}
	return errors.Join(errs...)
}

func profilerConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":           cfg.AppEnv,
			"service":       cfg.ServiceName,
			"roster_source": cfg.RosterSource,
		},
		// the engine and the batch pool dominate allocations
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	}
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

func servePprof(addr string, logger *logging.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           pprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return srv
}
