package clean

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/civic-etl-go/internal/table"
)

// timestampLayouts covers every trip and accident export seen so far
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006/01/02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

// ParseTimestamp parses a raw timestamp in any known source layout
func ParseTimestamp(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", v)
}

// ParseInt parses an integer cell into the given bit size. Float renderings
// of whole numbers ("7010.0") are accepted since null-bearing integer
// columns are exported as floats.
func ParseInt(v string, bits int) (int64, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseInt(v, 10, bits); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	if bits < 64 {
		limit := float64(int64(1) << (bits - 1))
		if f < -limit || f >= limit {
			return 0, fmt.Errorf("%q out of range for int%d", v, bits)
		}
	}
	return int64(f), nil
}

// ParseFloat parses a numeric cell, returning NaN for nulls
func ParseFloat(v string) (float64, error) {
	if table.IsNull(v) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

// text trims a cell and maps nulls to ""
func text(v string) string {
	if table.IsNull(v) {
		return ""
	}
	return strings.TrimSpace(v)
}
