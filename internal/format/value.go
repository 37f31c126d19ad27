package format

import (
	"fmt"
	"strconv"
)

// FormatSum renders a harmonic partial sum with the shortest decimal
// representation that round-trips to the same float64. This keeps displayed
// values exact without padding them with noise digits.
func FormatSum(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// FormatSumFixed renders a harmonic partial sum with a fixed number of
// decimal places, for aligned tabular output.
func FormatSumFixed(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// FormatBytes renders a byte count in human-readable binary units.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
