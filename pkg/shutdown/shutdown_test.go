package shutdown

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestGracefulStopsInTime(t *testing.T) {
	defer goleak.VerifyNone(t)

	forced := false
	ok := Graceful(time.Second, func() {}, func() { forced = true })

	if !ok || forced {
		t.Fatalf("expected graceful stop, got ok=%v forced=%v", ok, forced)
	}
}

func TestGracefulForcesAfterTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	forced := false
	ok := Graceful(10*time.Millisecond, func() { <-release }, func() {
		forced = true
		close(release)
	})

	if ok || !forced {
		t.Fatalf("expected forced stop, got ok=%v forced=%v", ok, forced)
	}
}

func TestWithSignalsCancelReleasesWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := WithSignals(context.Background())
	cancel()
	<-ctx.Done()
	// give the watcher goroutine a moment to observe ctx.Done
	time.Sleep(10 * time.Millisecond)
}
