package luck

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/saju/internal/ir"
)

// Age is an age in whole months.
type Age int

// Years returns the whole years of a.
func (a Age) Years() int { return int(a) / 12 }

// Months returns the months past the whole years.
func (a Age) Months() int { return int(a) % 12 }

func (a Age) String() string {
	return fmt.Sprintf("%dy%dm", a.Years(), a.Months())
}

// AgeRule converts the distance to the governing term into a start age.
type AgeRule int

const (
	// AgeThreeDays counts three days of distance as one year of age, so
	// every six hours add one month. Partial months are dropped.
	AgeThreeDays AgeRule = iota
	// AgeProportional scales the distance against the length of the birth
	// month section, the full section being ten years.
	AgeProportional
)

func (r AgeRule) String() string {
	if r == AgeProportional {
		return "proportional"
	}
	return "three_days"
}

// MarshalText renders the policy name used in config files.
func (r AgeRule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// ParseAgeRule accepts "three_days" or "proportional".
func ParseAgeRule(s string) (AgeRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "three_days", "3days":
		return AgeThreeDays, nil
	case "proportional":
		return AgeProportional, nil
	}
	return 0, ir.InvalidInput("unknown age rule %q (want three_days or proportional)", s)
}

const monthOfAgePerSixHours = 6 * time.Hour

// apply converts distance into an age. section is the length of the month
// section holding the birth and is only used by AgeProportional.
func (r AgeRule) apply(distance, section time.Duration) Age {
	if distance < 0 {
		distance = 0
	}
	if r == AgeProportional {
		secs := int64(distance / time.Second)
		total := int64(section / time.Second)
		if total <= 0 {
			return 0
		}
		return Age(120 * secs / total)
	}
	return Age(distance / monthOfAgePerSixHours)
}
