// Package health monitors the remote store and feeds the /api/health
// endpoint.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is satisfied by the store layer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthChecker monitors store reachability via periodic pings.
type StoreHealthChecker struct {
	store        Pinger
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewStoreHealthChecker creates a checker that starts unhealthy until its
// first successful probe.
func NewStoreHealthChecker(store Pinger, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	hc := &StoreHealthChecker{store: store, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0)
	return hc
}

// IsHealthy returns the cached health status (non-blocking).
func (hc *StoreHealthChecker) IsHealthy() bool {
	return hc.healthy.Load() == 1
}

// Start begins periodic health checking and blocks until ctx is done.
func (hc *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := int32(0)
	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		probeCtx, cancel := context.WithTimeout(ctx, to)
		err := hc.store.Ping(probeCtx)
		cancel()

		if err != nil {
			hc.healthy.Store(0)
		} else {
			hc.healthy.Store(1)
		}
		cur := hc.healthy.Load()
		if cur != prev {
			if cur == 1 {
				hc.log.Info().Msg("store health: UP")
			} else {
				hc.log.Error().Err(err).Msg("store health: DOWN")
			}
			prev = cur
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
