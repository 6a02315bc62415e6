// Package dashboardservice boots the nutrition dashboard HTTP service.
package dashboardservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutridash/nutridash-server/internal/api"
	"github.com/nutridash/nutridash-server/internal/auth"
	"github.com/nutridash/nutridash-server/internal/config"
	"github.com/nutridash/nutridash-server/internal/factory"
	"github.com/nutridash/nutridash-server/internal/health"
	"github.com/nutridash/nutridash-server/internal/notify"
	"github.com/nutridash/nutridash-server/internal/platform/logger"
)

// Run starts the dashboard service HTTP server and blocks until shutdown or error.
func Run(cfg *config.Config) error {
	log := logger.New("nutridash-service")

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Str("timezone", cfg.Timezone).
		Msg("Dashboard service starting")

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be configured")
	}

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Store unavailable")
		return err
	}

	var notifier notify.Notifier
	if cfg.GatewayURL != "" {
		notifier = notify.NewWhatsAppNotifier(cfg.GatewayURL, cfg.GatewayToken)
	} else {
		log.Warn().Msg("No WhatsApp gateway configured; reminder delivery disabled")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	authorizer := auth.NewStoreAuthorizer(st, auth.AdminCredentials{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
	})

	router := api.NewRouter(api.RouterDeps{
		Store:      st,
		Authorizer: authorizer,
		Tokens:     tokens,
		Notifier:   notifier,
		Location:   cfg.Location(),
	})

	// Health checker feeds /api/health and gates startup
	checker := startHealthChecker(ctx, cfg, log, st)
	if err := waitUntilHealthy(ctx, cfg, checker); err != nil {
		log.Error().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

func startHealthChecker(ctx context.Context, cfg *config.Config, log zerolog.Logger, st health.Pinger) *health.StoreHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	checker := health.NewStoreHealthChecker(st, log, probeTimeout)
	go checker.Start(ctx, interval)
	api.BindServiceHealth(checker.IsHealthy)
	return checker
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// startupHealthTimeout is interval*2 with a 60 second floor, giving checkers
// time to finish their first probe cycle.
func startupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until the store reports healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, checker *health.StoreHealthChecker) error {
	timeoutSeconds := startupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if checker.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: store not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
