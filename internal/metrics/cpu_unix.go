//go:build unix

package metrics

import (
	"time"

	"golang.org/x/sys/unix"
)

// CPUTime reads the process CPU usage split into user and system time.
// The bool reports whether the reading succeeded.
func CPUTime() (user, system time.Duration, ok bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, 0, false
	}
	return timevalDuration(ru.Utime), timevalDuration(ru.Stime), true
}

func timevalDuration(tv unix.Timeval) time.Duration {
	return time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond
}
