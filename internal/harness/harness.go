package harness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/config"
	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/ir"
	"github.com/roach88/saju/internal/testutil"
)

// Harness runs the cases of one scenario against one engine.
type Harness struct {
	scenario *Scenario
	engine   *engine.Engine
}

// New builds the engine a scenario describes: its fixture table, its
// policy file and a fixed query id.
func New(s *Scenario) (*Harness, error) {
	first, last := astro.DefaultFirstYear, astro.DefaultLastYear
	if s.Table != nil {
		first, last = s.Table.FirstYear, s.Table.LastYear
	}
	tbl, err := testutil.SharedTables().Get(first, last)
	if err != nil {
		return nil, err
	}

	var opts []engine.Option
	if s.Policy != "" {
		p, err := config.Load(s.Policy)
		if err != nil {
			return nil, fmt.Errorf("load policy: %w", err)
		}
		if opts, err = p.Options(); err != nil {
			return nil, fmt.Errorf("policy %s: %w", s.Policy, err)
		}
	}
	opts = append(opts, engine.WithIDGenerator(testutil.NewFixedQueryID(s.QueryID)))

	eng, err := engine.New(tbl, opts...)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return &Harness{scenario: s, engine: eng}, nil
}

// Run executes a scenario and returns the result. An error means the
// scenario could not be set up; failing cases are reported in the Result.
func Run(s *Scenario) (*Result, error) {
	h, err := New(s)
	if err != nil {
		return nil, err
	}
	result := NewResult()
	for _, c := range s.Cases {
		result.Add(h.RunCase(c))
	}
	return result, nil
}

// RunCase computes one case and checks its expectation.
func (h *Harness) RunCase(c Case) CaseResult {
	res := CaseResult{Name: c.Name, Pass: true}
	fail := func(err error) {
		res.Pass = false
		res.Errors = append(res.Errors, err.Error())
	}

	q, err := buildQuery(c.Query)
	var chart *engine.Chart
	if err == nil {
		chart, err = h.engine.Compute(q)
	}

	if c.Expect.Error != "" {
		if aerr := assertError(err, c.Expect.Error); aerr != nil {
			fail(aerr)
		}
		return res
	}
	if err != nil {
		fail(fmt.Errorf("compute: %w", err))
		return res
	}

	res.Chart = chart
	for _, e := range assertChart(chart, c.Expect.Chart) {
		fail(e)
	}
	return res
}

// buildQuery converts the YAML query into an engine.Query.
func buildQuery(qs QuerySpec) (engine.Query, error) {
	q := engine.Query{Lunar: qs.Lunar, LuckCount: qs.LuckCount}

	if qs.Date != "" {
		d, err := ParseDate(qs.Date)
		if err != nil {
			return q, err
		}
		q.Date = d
	}
	if qs.Time != "" {
		h, m, err := ParseClock(qs.Time)
		if err != nil {
			return q, err
		}
		q.Date.Hour, q.Date.Minute = h, m
		q.HourKnown = true
	}
	if qs.Gender != "" {
		g, err := ir.ParseGender(qs.Gender)
		if err != nil {
			return q, err
		}
		q.Gender = &g
	}
	return q, nil
}

// ParseDate reads YYYY-MM-DD without range checks; the engine validates
// the result.
func ParseDate(s string) (ir.GregorianDate, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return ir.GregorianDate{}, ir.InvalidInput("date %q is not YYYY-MM-DD", s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return ir.GregorianDate{}, ir.InvalidInput("date %q is not YYYY-MM-DD", s)
		}
		n[i] = v
	}
	return ir.Date(n[0], n[1], n[2]), nil
}

// ParseClock reads HH:MM.
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, ir.InvalidInput("time %q is not HH:MM", s)
	}
	if hour, err = strconv.Atoi(h); err != nil {
		return 0, 0, ir.InvalidInput("time %q is not HH:MM", s)
	}
	if minute, err = strconv.Atoi(m); err != nil {
		return 0, 0, ir.InvalidInput("time %q is not HH:MM", s)
	}
	return hour, minute, nil
}
