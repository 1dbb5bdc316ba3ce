package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestZeroDelayRunsSynchronously(t *testing.T) {
	var calls atomic.Int64
	d := New(0, func() { calls.Add(1) })

	d.Trigger()
	d.Trigger()

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after synchronous runs")
	}
}

func TestTriggerCoalesces(t *testing.T) {
	var calls atomic.Int64
	d := New(50 * time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("calls before delay = %d, want 0", got)
	}
	if !d.Pending() {
		t.Fatal("Pending() = false with a scheduled run")
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after the run fired")
	}
}

func TestFlushRunsPendingOnce(t *testing.T) {
	var calls atomic.Int64
	d := New(time.Hour, func() { calls.Add(1) })

	d.Trigger()
	d.Flush()

	if got := calls.Load(); got != 1 {
		t.Errorf("calls after flush = %d, want 1", got)
	}

	// Nothing pending: a second flush is a no-op.
	d.Flush()
	if got := calls.Load(); got != 1 {
		t.Errorf("calls after second flush = %d, want 1", got)
	}
}

func TestStopCancelsPending(t *testing.T) {
	var calls atomic.Int64
	d := New(20 * time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls after stop = %d, want 0", got)
	}
}
