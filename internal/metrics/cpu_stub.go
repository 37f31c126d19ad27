//go:build !unix

package metrics

import "time"

// CPUTime is unavailable on this platform.
func CPUTime() (user, system time.Duration, ok bool) {
	return 0, 0, false
}
