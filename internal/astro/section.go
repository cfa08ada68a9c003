package astro

import (
	"time"

	"github.com/roach88/saju/internal/ir"
)

// Section is the span between two consecutive sectional (節) terms, the unit
// that governs the month pillar and the luck-period start age.
type Section struct {
	Year  int       // Gregorian year of the opening term
	Term  int       // even term index that opens the section
	Start time.Time // moment of the opening term
	End   time.Time // moment of the next sectional term
}

// Length returns the duration of the section.
func (s Section) Length() time.Duration { return s.End.Sub(s.Start) }

// SectionAt returns the section containing instant t: the latest sectional
// term at or before t, and the one after it.
func SectionAt(ref Reference, t time.Time) (Section, error) {
	y := t.UTC().Year()
	for year := y; year >= y-1; year-- {
		for term := TermsPerYear - 2; term >= 0; term -= 2 {
			m, err := ref.SolarTermMoment(year, term)
			if err != nil {
				return Section{}, err
			}
			if m.After(t) {
				continue
			}
			ny, nt := year, term+2
			if nt >= TermsPerYear {
				ny, nt = year+1, MinorCold
			}
			end, err := ref.SolarTermMoment(ny, nt)
			if err != nil {
				return Section{}, err
			}
			return Section{Year: year, Term: term, Start: m, End: end}, nil
		}
	}
	return Section{}, ir.InconsistentTable("no sectional term precedes %s", t.UTC().Format(time.RFC3339))
}
