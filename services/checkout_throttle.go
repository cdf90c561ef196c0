package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ThrottleCooldownCapSeconds = 30
	throttleKeyPrefix          = "menux:throttle:"
	throttleWindow             = 10 * time.Minute
)

// CheckoutThrottle spaces out repeated checkouts from one session so a
// double-tapped button does not relay the same order twice. The n-th checkout
// within the window starts a cooldown of min(30, 2^n) seconds. A nil throttle
// or client never blocks.
type CheckoutThrottle struct {
	Client *redis.Client
}

// WaitSeconds returns how long the session must wait before checking out again (0 if no cooldown).
func (t *CheckoutThrottle) WaitSeconds(ctx context.Context, sessionID string) (int, error) {
	if t == nil || t.Client == nil {
		return 0, nil
	}
	ttl, err := t.Client.PTTL(ctx, throttleKeyPrefix+sessionID+":until").Result()
	if err != nil {
		return 0, fmt.Errorf("redis pttl: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return int(math.Ceil(ttl.Seconds())), nil
}

// RecordCheckout counts a successful checkout and starts its cooldown.
func (t *CheckoutThrottle) RecordCheckout(ctx context.Context, sessionID string) error {
	if t == nil || t.Client == nil {
		return nil
	}
	countKey := throttleKeyPrefix + sessionID + ":count"
	n, err := t.Client.Incr(ctx, countKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	cooldown := time.Duration(CooldownSecondsForCount(int(n))) * time.Second
	pipe := t.Client.TxPipeline()
	pipe.Expire(ctx, countKey, throttleWindow)
	pipe.Set(ctx, throttleKeyPrefix+sessionID+":until", n, cooldown)
	_, err = pipe.Exec(ctx)
	return err
}

// Reset clears the session's cooldown and count.
func (t *CheckoutThrottle) Reset(ctx context.Context, sessionID string) error {
	if t == nil || t.Client == nil {
		return nil
	}
	return t.Client.Del(ctx, throttleKeyPrefix+sessionID+":count", throttleKeyPrefix+sessionID+":until").Err()
}

// CooldownSecondsForCount returns min(30, 2^count).
func CooldownSecondsForCount(count int) int {
	s := int(math.Pow(2, float64(count)))
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return s
}
