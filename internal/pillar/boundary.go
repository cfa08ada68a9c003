package pillar

import (
	"strings"

	"github.com/roach88/saju/internal/ir"
)

// DayBoundary selects when the day pillar rolls over.
type DayBoundary int

const (
	// DayBoundaryZiHour starts the next day pillar at 23:00.
	DayBoundaryZiHour DayBoundary = iota
	// DayBoundaryMidnight keeps the civil day until 00:00.
	DayBoundaryMidnight
)

func (b DayBoundary) String() string {
	if b == DayBoundaryMidnight {
		return "midnight"
	}
	return "zi_hour"
}

// MarshalText renders the policy name used in config files.
func (b DayBoundary) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// ParseDayBoundary accepts "zi_hour" or "midnight".
func ParseDayBoundary(s string) (DayBoundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zi_hour", "zi":
		return DayBoundaryZiHour, nil
	case "midnight":
		return DayBoundaryMidnight, nil
	}
	return 0, ir.InvalidInput("unknown day boundary %q (want zi_hour or midnight)", s)
}
