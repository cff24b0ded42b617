// ABOUTME: Backoff calculation for retried embedding and completion calls
// ABOUTME: Exponential growth with jitter, capped at 30 seconds
package util

import (
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns the delay before retry number attempt.
// The base delay doubles per attempt with -25% to +25% random jitter.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Clamp the shift amount so 2^attempt cannot overflow
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
