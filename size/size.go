// Package size converts between bytes, kilobytes, and megabytes using
// decimal (1000-based) units.
package size

import "math"

const (
	bytesPerKB = 1000
	bytesPerMB = 1000 * 1000
	kbPerMB    = 1000
)

// BytesToKB converts bytes to kilobytes.
func BytesToKB(b int) float64 {
	return float64(b) / bytesPerKB
}

// BytesToMB converts bytes to megabytes.
func BytesToMB(b int) float64 {
	return float64(b) / bytesPerMB
}

// KBToBytes converts kilobytes to bytes, truncating fractional bytes.
func KBToBytes(kb float64) int {
	return int(kb * bytesPerKB)
}

// KBToMB converts kilobytes to whole megabytes, flooring the result.
func KBToMB(kb float64) int {
	return int(math.Floor(kb / kbPerMB))
}

// MBToBytes converts megabytes to bytes, truncating fractional bytes.
func MBToBytes(mb float64) int {
	return int(mb * bytesPerMB)
}

// MBToKB converts megabytes to kilobytes, truncating fractional kilobytes.
func MBToKB(mb float64) int {
	return int(mb * kbPerMB)
}
