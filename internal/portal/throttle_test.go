package portal

import (
	"context"
	"testing"
	"time"
)

func TestThrottleOpensImmediatelyWhenIdle(t *testing.T) {
	gate := newThrottle(time.Hour)
	if !gate.wait(context.Background()) {
		t.Fatalf("idle gate should open")
	}
}

func TestThrottleHonoursCancellation(t *testing.T) {
	gate := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !gate.wait(ctx) {
		t.Fatalf("first pass should open the gate")
	}
	cancel()
	done := make(chan bool, 1)
	go func() { done <- gate.wait(ctx) }()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("cancelled wait must not open the gate")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled wait did not return")
	}
}

func TestThrottleZeroIntervalNeverBlocks(t *testing.T) {
	gate := newThrottle(0)
	for i := 0; i < 3; i++ {
		if !gate.wait(context.Background()) {
			t.Fatalf("zero-interval gate should always open")
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if gate.wait(ctx) {
		t.Fatalf("cancelled context should close even the zero-interval gate")
	}
}
