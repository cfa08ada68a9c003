package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/calendar"
	"github.com/roach88/saju/internal/ir"
	"github.com/roach88/saju/internal/luck"
	"github.com/roach88/saju/internal/pillar"
)

// IDGenerator generates query ids for chart correlation.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// KST is the default civil zone, Korea Standard Time (UTC+9, no DST).
var KST = time.FixedZone("KST", 9*60*60)

type settings struct {
	boundary  pillar.DayBoundary
	ageRule   luck.AgeRule
	loc       *time.Location
	luckSpan  int
	luckCount int
	ids       IDGenerator
}

// Option configures an Engine.
type Option func(*settings)

// WithDayBoundary sets the day pillar rollover policy.
//
// Default: pillar.DayBoundaryZiHour
func WithDayBoundary(b pillar.DayBoundary) Option {
	return func(s *settings) { s.boundary = b }
}

// WithAgeRule sets the luck start age rule.
//
// Default: luck.AgeThreeDays
func WithAgeRule(r luck.AgeRule) Option {
	return func(s *settings) { s.ageRule = r }
}

// WithLocation sets the civil time zone used for lunar month days and for
// the birth instant.
//
// Default: KST
func WithLocation(loc *time.Location) Option {
	return func(s *settings) { s.loc = loc }
}

// WithLuckSpan sets the length of a luck period in years.
//
// Default: 10 (luck.DefaultSpanYears)
func WithLuckSpan(years int) Option {
	return func(s *settings) { s.luckSpan = years }
}

// WithLuckCount sets how many luck periods a chart lists when the query
// does not ask for a specific number.
//
// Default: 8 (luck.DefaultCount)
func WithLuckCount(n int) Option {
	return func(s *settings) { s.luckCount = n }
}

// WithIDGenerator sets the query id generator.
//
// Default: UUIDv7Generator
func WithIDGenerator(g IDGenerator) Option {
	return func(s *settings) { s.ids = g }
}

// Policy is the resolved set of conventions an Engine runs with. It is
// echoed in every Chart.
type Policy struct {
	DayBoundary pillar.DayBoundary `json:"day_boundary"`
	AgeRule     luck.AgeRule       `json:"age_rule"`
	Zone        string             `json:"zone"`
	LuckSpan    int                `json:"luck_span_years"`
}

// Engine computes charts. It is immutable after New and safe for concurrent
// use.
type Engine struct {
	ref       astro.Reference
	conv      *calendar.Converter
	pillars   *pillar.Calculator
	scheduler *luck.Scheduler
	settings  settings
}

type validator interface {
	Validate() error
}

// New builds an Engine over ref. A reference that can validate itself is
// validated first; an inconsistent table never produces an Engine.
func New(ref astro.Reference, opts ...Option) (*Engine, error) {
	if ref == nil {
		return nil, ir.InvalidInput("reference table is nil")
	}
	s := settings{
		boundary:  pillar.DayBoundaryZiHour,
		ageRule:   luck.AgeThreeDays,
		loc:       KST,
		luckSpan:  luck.DefaultSpanYears,
		luckCount: luck.DefaultCount,
		ids:       UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.luckCount < 1 {
		return nil, ir.InvalidInput("luck count must be at least 1, got %d", s.luckCount)
	}
	if s.ids == nil {
		return nil, ir.InvalidInput("id generator is nil")
	}

	if v, ok := ref.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	conv, err := calendar.New(ref, s.loc)
	if err != nil {
		return nil, fmt.Errorf("build calendar: %w", err)
	}
	pc, err := pillar.New(ref, s.loc, s.boundary)
	if err != nil {
		return nil, fmt.Errorf("build pillar calculator: %w", err)
	}
	ls, err := luck.New(ref, s.ageRule, s.luckSpan)
	if err != nil {
		return nil, fmt.Errorf("build luck scheduler: %w", err)
	}

	e := &Engine{ref: ref, conv: conv, pillars: pc, scheduler: ls, settings: s}
	slog.Debug("engine ready",
		"first_year", conv.FirstYear(),
		"last_year", conv.LastYear(),
		"day_boundary", s.boundary.String(),
		"age_rule", s.ageRule.String(),
		"zone", s.loc.String())
	return e, nil
}

var defaultEngine = sync.OnceValues(func() (*Engine, error) {
	start := time.Now()
	tbl, err := astro.ComputeDefault()
	if err != nil {
		return nil, fmt.Errorf("compute reference table: %w", err)
	}
	e, err := New(tbl)
	if err != nil {
		return nil, err
	}
	slog.Info("reference table ready",
		"first_year", tbl.FirstYear(),
		"last_year", tbl.LastYear(),
		"duration", time.Since(start))
	return e, nil
})

// Default returns the process-wide Engine over the built-in 1899-2101
// table with default policies. The table is built on first call.
func Default() (*Engine, error) {
	return defaultEngine()
}

// Policy returns the conventions this Engine runs with.
func (e *Engine) Policy() Policy {
	return Policy{
		DayBoundary: e.settings.boundary,
		AgeRule:     e.settings.ageRule,
		Zone:        e.settings.loc.String(),
		LuckSpan:    e.settings.luckSpan,
	}
}

// FirstYear returns the first supported Gregorian year.
func (e *Engine) FirstYear() int { return e.conv.FirstYear() }

// LastYear returns the last supported Gregorian year.
func (e *Engine) LastYear() int { return e.conv.LastYear() }

// SolarToLunar converts a civil date to the lunisolar calendar.
func (e *Engine) SolarToLunar(d ir.GregorianDate) (ir.LunisolarDate, error) {
	return e.conv.SolarToLunar(d)
}

// LunarToSolar converts a lunisolar date to the Gregorian calendar.
func (e *Engine) LunarToSolar(d ir.LunisolarDate) (ir.GregorianDate, error) {
	return e.conv.LunarToSolar(d)
}

// MonthsOf lists the months of a lunar year.
func (e *Engine) MonthsOf(year int) ([]calendar.Month, error) {
	return e.conv.MonthsOf(year)
}
