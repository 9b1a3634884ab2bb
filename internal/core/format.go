package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Binary size units. Sizes are rendered the way the Recycle Bin reports
// them: 1 KiB = 1024 bytes.
const (
	KiB int64 = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
)

// FormatSize renders a byte count using binary units (KiB/MiB/GiB).
// Values below 10 in a unit keep one decimal place; larger values are
// rounded to whole units.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + FormatSize(-bytes)
	}

	unit := "B"
	value := float64(bytes)

	switch {
	case bytes >= TiB:
		unit = "TiB"
		value /= float64(TiB)
	case bytes >= GiB:
		unit = "GiB"
		value /= float64(GiB)
	case bytes >= MiB:
		unit = "MiB"
		value /= float64(MiB)
	case bytes >= KiB:
		unit = "KiB"
		value /= float64(KiB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}

	if value < 10 {
		return fmt.Sprintf("%.1f %s", value, unit)
	}
	return fmt.Sprintf("%.0f %s", value, unit)
}

// ParseSize parses a human size string like "100MB", "1.5 GiB" or "512"
// (plain bytes) into a byte count. Decimal (KB/MB/GB) and binary
// (KiB/MiB/GiB) suffixes are both accepted and both treated as powers
// of 1024, matching how every Windows tool the users compare against
// reports sizes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	upper := strings.ToUpper(s)
	multiplier := int64(1)

	suffixes := []struct {
		suffix string
		mult   int64
	}{
		{"TIB", TiB}, {"TB", TiB}, {"T", TiB},
		{"GIB", GiB}, {"GB", GiB}, {"G", GiB},
		{"MIB", MiB}, {"MB", MiB}, {"M", MiB},
		{"KIB", KiB}, {"KB", KiB}, {"K", KiB},
		{"B", 1},
	}

	num := upper
	for _, sf := range suffixes {
		if strings.HasSuffix(upper, sf.suffix) {
			multiplier = sf.mult
			num = strings.TrimSpace(strings.TrimSuffix(upper, sf.suffix))
			break
		}
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid size %q: negative", s)
	}

	return int64(value * float64(multiplier)), nil
}
