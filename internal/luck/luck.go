package luck

import (
	"fmt"
	"time"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/ganzhi"
	"github.com/roach88/saju/internal/ir"
)

// Direction is the way the periods walk the sexagenary cycle.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// MarshalText renders "forward" or "backward".
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Defaults for the period sequence.
const (
	DefaultSpanYears = 10
	DefaultCount     = 8
)

// Period is one luck period. Ages are in months, EndAge exclusive; years are
// Gregorian and EndYear inclusive.
type Period struct {
	Index     int               `json:"index"`
	Pillar    ganzhi.StemBranch `json:"pillar"`
	StartAge  Age               `json:"start_age_months"`
	EndAge    Age               `json:"end_age_months"`
	StartYear int               `json:"start_year"`
	EndYear   int               `json:"end_year"`
}

// Schedule is the direction, start age and requested prefix of periods.
type Schedule struct {
	Direction Direction `json:"direction"`
	StartAge  Age       `json:"start_age_months"`
	Periods   []Period  `json:"periods"`
}

// Input is what the scheduler needs from a chart.
type Input struct {
	Birth  time.Time // birth instant, in the civil zone
	Gender ir.Gender
	Year   ganzhi.StemBranch // year pillar
	Month  ganzhi.StemBranch // month pillar
}

// Scheduler computes luck periods against a reference table.
type Scheduler struct {
	ref  astro.Reference
	rule AgeRule
	span int
}

// New returns a Scheduler. span is the length of a period in years.
func New(ref astro.Reference, rule AgeRule, span int) (*Scheduler, error) {
	if rule != AgeThreeDays && rule != AgeProportional {
		return nil, ir.InvalidInput("unknown age rule %d", int(rule))
	}
	if span < 1 {
		return nil, ir.InvalidInput("luck period span must be at least 1 year, got %d", span)
	}
	return &Scheduler{ref: ref, rule: rule, span: span}, nil
}

// Rule returns the configured age rule.
func (s *Scheduler) Rule() AgeRule { return s.rule }

// DirectionOf applies the gender and year stem polarity rule.
func DirectionOf(g ir.Gender, yearStem ganzhi.Stem) (Direction, error) {
	if !g.Valid() {
		return 0, ir.InvalidGender(g.String())
	}
	male := g == ir.GenderMale
	if male == yearStem.IsYang() {
		return Forward, nil
	}
	return Backward, nil
}

// StartAge returns the age at which the first period begins.
func (s *Scheduler) StartAge(birth time.Time, dir Direction) (Age, error) {
	sec, err := astro.SectionAt(s.ref, birth)
	if err != nil {
		return 0, fmt.Errorf("luck start age: %w", err)
	}
	var distance time.Duration
	if dir == Forward {
		distance = sec.End.Sub(birth)
	} else {
		distance = birth.Sub(sec.Start)
	}
	return s.rule.apply(distance, sec.Length()), nil
}

// Schedule returns the first count periods for in.
func (s *Scheduler) Schedule(in Input, count int) (Schedule, error) {
	if count < 1 {
		return Schedule{}, ir.InvalidInput("luck period count must be at least 1, got %d", count)
	}
	dir, err := DirectionOf(in.Gender, in.Year.Stem())
	if err != nil {
		return Schedule{}, err
	}
	start, err := s.StartAge(in.Birth, dir)
	if err != nil {
		return Schedule{}, err
	}

	birthYear := in.Birth.Year()
	spanMonths := Age(12 * s.span)
	periods := make([]Period, count)
	for i := range periods {
		from := start + Age(i)*spanMonths
		to := from + spanMonths
		periods[i] = Period{
			Index:     i,
			Pillar:    in.Month.Add(dir.step() * (i + 1)),
			StartAge:  from,
			EndAge:    to,
			StartYear: birthYear + from.Years(),
			EndYear:   birthYear + to.Years() - 1,
		}
	}
	return Schedule{Direction: dir, StartAge: start, Periods: periods}, nil
}
