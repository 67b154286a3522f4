package format

import "github.com/dustin/go-humanize"

// HumanizeBytes converts a byte count into a decimal human-readable string (e.g., "1.5 MB").
func HumanizeBytes(b int64) string {
	if b < 0 {
		return "-" + humanize.Bytes(uint64(-b))
	}
	return humanize.Bytes(uint64(b))
}
