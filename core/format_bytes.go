package core

import "fmt"

// Binary byte units.
const (
	BytesPerKB int64 = 1024
	BytesPerMB int64 = 1024 * BytesPerKB
	BytesPerGB int64 = 1024 * BytesPerMB
)

var byteUnits = []struct {
	size int64
	name string
}{
	{BytesPerGB, "GB"},
	{BytesPerMB, "MB"},
	{BytesPerKB, "KB"},
}

// FormatBytes renders a size for upload-limit messages and CLI output.
// Whole multiples print without decimals ("20 MB"); others keep one ("1.5 KB").
// Negative values are treated as 0.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	for _, unit := range byteUnits {
		if bytes < unit.size {
			continue
		}
		if bytes%unit.size == 0 {
			return fmt.Sprintf("%d %s", bytes/unit.size, unit.name)
		}
		return fmt.Sprintf("%.1f %s", float64(bytes)/float64(unit.size), unit.name)
	}
	return fmt.Sprintf("%d B", bytes)
}
