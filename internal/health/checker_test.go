package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type flakyPinger struct {
	fail atomic.Bool
}

func (f *flakyPinger) Ping(context.Context) error {
	if f.fail.Load() {
		return errors.New("unreachable")
	}
	return nil
}

func TestCheckerStartsUnhealthy(t *testing.T) {
	hc := NewStoreHealthChecker(&flakyPinger{}, zerolog.Nop(), time.Second)
	if hc.IsHealthy() {
		t.Fatal("checker must start unhealthy before the first probe")
	}
}

func TestCheckerTracksStoreState(t *testing.T) {
	p := &flakyPinger{}
	hc := NewStoreHealthChecker(p, zerolog.Nop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, 10*time.Millisecond)

	waitFor(t, func() bool { return hc.IsHealthy() })

	p.fail.Store(true)
	waitFor(t, func() bool { return !hc.IsHealthy() })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
