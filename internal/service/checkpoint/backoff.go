package checkpoint

import "time"

const (
	retryBaseDelay = 5000 * time.Millisecond
	retryMaxDelay  = 30000 * time.Millisecond
)

// RetryDelay returns the wait before lock retry number n:
// min(5s * 2^n, 30s) scaled by a jitter factor in [0.5, 1.0].
// r must be in [0, 1].
func RetryDelay(n int, r float64) time.Duration {
	if n < 0 {
		n = 0
	}

	delay := retryMaxDelay
	// The cap is already reached at n=3; large n would overflow the shift.
	if n < 8 {
		if d := retryBaseDelay << n; d < retryMaxDelay {
			delay = d
		}
	}

	factor := 0.5 + 0.5*clamp01(r)
	return time.Duration(float64(delay) * factor)
}

func clamp01(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
