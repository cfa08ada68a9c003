package engine

import (
	"log/slog"

	"github.com/roach88/saju/internal/ganzhi"
	"github.com/roach88/saju/internal/ir"
	"github.com/roach88/saju/internal/luck"
)

// LunarInput is a birth date given in the lunisolar calendar. It is
// converted to the solar calendar before anything else is computed.
type LunarInput struct {
	Year  int  `json:"year" yaml:"year"`
	Month int  `json:"month" yaml:"month"`
	Day   int  `json:"day" yaml:"day"`
	Leap  bool `json:"leap" yaml:"leap"`
}

// Query is one chart request.
type Query struct {
	// Date is the civil birth date-time. When Lunar is set only its clock
	// fields are used.
	Date ir.GregorianDate
	// HourKnown reports whether Date's clock fields are meaningful. When
	// false the hour pillar and everything derived from it are absent.
	HourKnown bool
	// Lunar, when set, gives the birth date in the lunisolar calendar.
	Lunar *LunarInput
	// Gender, when set, adds the luck schedule.
	Gender *ir.Gender
	// LuckCount is the number of luck periods; 0 uses the engine default.
	LuckCount int
}

// resolveDate returns the civil solar date-time of q.
func (e *Engine) resolveDate(q Query) (ir.GregorianDate, error) {
	d := q.Date
	if q.Lunar != nil {
		solar, err := e.conv.LunarToSolar(ir.LunisolarDate{
			Year:  q.Lunar.Year,
			Month: q.Lunar.Month,
			Day:   q.Lunar.Day,
			Leap:  q.Lunar.Leap,
		})
		if err != nil {
			return ir.GregorianDate{}, err
		}
		solar.Hour, solar.Minute, solar.Second = d.Hour, d.Minute, d.Second
		d = solar
	}
	if !q.HourKnown {
		d = d.DateOnly()
	}
	return d, nil
}

// Compute builds the chart for q.
func (e *Engine) Compute(q Query) (*Chart, error) {
	if q.LuckCount < 0 {
		return nil, ir.InvalidInput("luck count must not be negative, got %d", q.LuckCount)
	}
	if q.Gender != nil && !q.Gender.Valid() {
		return nil, ir.InvalidGender(q.Gender.String())
	}

	solar, err := e.resolveDate(q)
	if err != nil {
		return nil, err
	}
	lunar, err := e.conv.SolarToLunar(solar)
	if err != nil {
		return nil, err
	}
	p, err := e.pillars.Compute(solar, q.HourKnown)
	if err != nil {
		return nil, err
	}

	self := p.Day.Stem()
	used := []ganzhi.StemBranch{p.Year, p.Month, p.Day}
	chart := &Chart{
		Solar:     solar,
		HourKnown: q.HourKnown,
		Lunar:     lunar,
		Pillars: PillarSet{
			Year:  newPillarView(p.Year, self, false),
			Month: newPillarView(p.Month, self, false),
			Day:   newPillarView(p.Day, self, true),
		},
		DayMaster: newDayMaster(self),
		Zodiac:    p.Year.Branch().Zodiac(),
		NaYin:     p.Year.NaYin(),
		Policy:    e.Policy(),
	}
	if p.Hour != nil {
		hv := newPillarView(*p.Hour, self, false)
		chart.Pillars.Hour = &hv
		used = append(used, *p.Hour)
	}
	chart.Elements = newElementBalance(used)

	if q.Gender != nil {
		count := q.LuckCount
		if count == 0 {
			count = e.settings.luckCount
		}
		// With the hour unknown, solar is local midnight and the start age
		// is measured from there.
		sched, err := e.scheduler.Schedule(luck.Input{
			Birth:  solar.In(e.settings.loc),
			Gender: *q.Gender,
			Year:   p.Year,
			Month:  p.Month,
		}, count)
		if err != nil {
			return nil, err
		}
		chart.Luck = &LuckView{
			Gender:    *q.Gender,
			Direction: sched.Direction,
			StartAge:  sched.StartAge,
			Periods:   sched.Periods,
		}
	}

	fp, err := chart.fingerprint()
	if err != nil {
		return nil, err
	}
	chart.Fingerprint = fp
	chart.QueryID = e.settings.ids.Generate()

	slog.Debug("chart computed",
		"query_id", chart.QueryID,
		"solar", solar.String(),
		"lunar", lunar.String(),
		"fingerprint", fp)
	return chart, nil
}
