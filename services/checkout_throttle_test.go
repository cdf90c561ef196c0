package services

import (
	"context"
	"testing"
	"time"

	"menux/db"

	"github.com/google/uuid"
)

func TestCooldownSecondsForCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"double tap after first order", 1, 2},
		{"second resend", 2, 4},
		{"fourth resend", 4, 16},
		{"first count past the cap", 5, ThrottleCooldownCapSeconds},
		{"spam within the window", 40, ThrottleCooldownCapSeconds},
		{"nothing sent yet", 0, 1},
	}
	for _, tt := range tests {
		if got := CooldownSecondsForCount(tt.count); got != tt.want {
			t.Errorf("%s: CooldownSecondsForCount(%d) = %d, want %d", tt.name, tt.count, got, tt.want)
		}
	}

	// the longest cooldown fits many times inside the counting window
	if longest := time.Duration(ThrottleCooldownCapSeconds) * time.Second; throttleWindow < 10*longest {
		t.Errorf("window %v too short for cap %v", throttleWindow, longest)
	}
}

func TestCheckoutThrottleDisabled(t *testing.T) {
	ctx := context.Background()
	for _, th := range []*CheckoutThrottle{nil, {}} {
		if err := th.RecordCheckout(ctx, "s1"); err != nil {
			t.Fatalf("RecordCheckout: %v", err)
		}
		if wait, err := th.WaitSeconds(ctx, "s1"); wait != 0 || err != nil {
			t.Errorf("WaitSeconds = %d, %v; want 0, nil", wait, err)
		}
	}
}

// Requires Redis. Skip if db.Redis is nil or -short.
func TestCheckoutThrottle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping throttle integration test in short mode")
	}
	if db.Redis == nil {
		t.Skip("skipping throttle integration test: no redis client")
	}
	ctx := context.Background()
	th := &CheckoutThrottle{Client: db.Redis}
	sid := uuid.NewString()
	defer func() { _ = th.Reset(ctx, sid) }()

	wait, err := th.WaitSeconds(ctx, sid)
	if err != nil || wait != 0 {
		t.Fatalf("fresh session: wait = %d, %v", wait, err)
	}

	if err := th.RecordCheckout(ctx, sid); err != nil {
		t.Fatal(err)
	}
	wait, _ = th.WaitSeconds(ctx, sid)
	if wait <= 0 || wait > 2 {
		t.Errorf("after one checkout: wait = %d, want 1..2", wait)
	}

	for i := 0; i < 8; i++ {
		_ = th.RecordCheckout(ctx, sid)
	}
	wait, _ = th.WaitSeconds(ctx, sid)
	if wait > ThrottleCooldownCapSeconds {
		t.Errorf("after 9 checkouts: wait = %d, want <= %d", wait, ThrottleCooldownCapSeconds)
	}

	_ = th.Reset(ctx, sid)
	if wait, _ = th.WaitSeconds(ctx, sid); wait != 0 {
		t.Errorf("after reset: wait = %d, want 0", wait)
	}
}
