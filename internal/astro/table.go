package astro

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/saju/internal/ir"
)

// TermsPerYear is the number of solar terms in a Gregorian year.
const TermsPerYear = 24

// Term indices used by the calendar and pillar code.
const (
	MinorCold      = 0  // 小寒
	StartOfSpring  = 2  // 立春
	WinterSolstice = 23 // 冬至
)

// Default table range. Queries are served one year inside each end so that
// month sections and lunar months straddling a year boundary are complete.
const (
	DefaultFirstYear = 1899
	DefaultLastYear  = 2101
)

// Validation bounds, in seconds.
const (
	minTermGap = 13 * 86400
	maxTermGap = 17 * 86400
	minMoonGap = 29 * 86400
	maxMoonGap = 30 * 86400
)

// Reference is the lookup contract the converter, pillar calculator and luck
// scheduler consume. *Table implements it; tests may substitute their own.
type Reference interface {
	// FirstYear and LastYear bound the years the reference covers.
	FirstYear() int
	LastYear() int
	// SolarTermMoment returns the UTC moment of term (0-23) in year.
	SolarTermMoment(year, term int) (time.Time, error)
	// NewMoonMoment returns the idx-th new moon that falls in UTC year.
	NewMoonMoment(year, idx int) (time.Time, error)
	// NewMoonCount returns how many new moons fall in UTC year.
	NewMoonCount(year int) (int, error)
}

// Table is an immutable, validated reference table.
type Table struct {
	first, last int
	terms       [][TermsPerYear]int64
	moons       [][]int64
}

var _ Reference = (*Table)(nil)

// TermRow is one persisted solar term moment.
type TermRow struct {
	Year int
	Term int
	Unix int64
}

// MoonRow is one persisted new moon moment.
type MoonRow struct {
	Year  int
	Index int
	Unix  int64
}

// Compute builds and validates the table for years first..last (inclusive)
// from the ephemeris model.
func Compute(first, last int) (*Table, error) {
	if first > last {
		return nil, ir.InvalidInput("table range %d-%d is empty", first, last)
	}
	start := time.Now()
	n := last - first + 1
	t := &Table{
		first: first,
		last:  last,
		terms: make([][TermsPerYear]int64, n),
		moons: make([][]int64, n),
	}
	for y := first; y <= last; y++ {
		for i := range TermsPerYear {
			t.terms[y-first][i] = SolarTermUnix(y, i)
		}
	}

	lo := time.Date(first, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	hi := time.Date(last+1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	for k := lunationNear(first); ; k++ {
		u := NewMoonUnix(k)
		if u < lo {
			continue
		}
		if u >= hi {
			break
		}
		y := time.Unix(u, 0).UTC().Year()
		t.moons[y-first] = append(t.moons[y-first], u)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("reference table computed",
		"first", first, "last", last, "duration", time.Since(start))
	return t, nil
}

// ComputeDefault builds the DefaultFirstYear..DefaultLastYear table.
func ComputeDefault() (*Table, error) {
	return Compute(DefaultFirstYear, DefaultLastYear)
}

// FromRows assembles a table from persisted rows and validates it. The year
// range is taken from the term rows; every year in it must have all 24
// terms.
func FromRows(terms []TermRow, moons []MoonRow) (*Table, error) {
	if len(terms) == 0 {
		return nil, ir.InconsistentTable("no solar term rows")
	}
	first, last := terms[0].Year, terms[0].Year
	for _, r := range terms {
		first = min(first, r.Year)
		last = max(last, r.Year)
	}
	n := last - first + 1
	t := &Table{
		first: first,
		last:  last,
		terms: make([][TermsPerYear]int64, n),
		moons: make([][]int64, n),
	}
	seen := make([][TermsPerYear]bool, n)
	for _, r := range terms {
		if r.Term < 0 || r.Term >= TermsPerYear {
			return nil, ir.InconsistentTable("solar term index %d out of range in %d", r.Term, r.Year)
		}
		if seen[r.Year-first][r.Term] {
			return nil, ir.InconsistentTable("duplicate solar term %d in %d", r.Term, r.Year)
		}
		seen[r.Year-first][r.Term] = true
		t.terms[r.Year-first][r.Term] = r.Unix
	}
	for y := range seen {
		for i, ok := range seen[y] {
			if !ok {
				return nil, ir.InconsistentTable("missing solar term %d in %d", i, first+y)
			}
		}
	}

	byYear := make([]map[int]int64, n)
	for _, r := range moons {
		if r.Year < first || r.Year > last {
			return nil, ir.InconsistentTable("new moon row for %d outside %d-%d", r.Year, first, last)
		}
		if byYear[r.Year-first] == nil {
			byYear[r.Year-first] = make(map[int]int64)
		}
		if _, dup := byYear[r.Year-first][r.Index]; dup {
			return nil, ir.InconsistentTable("duplicate new moon %d in %d", r.Index, r.Year)
		}
		byYear[r.Year-first][r.Index] = r.Unix
	}
	for y, m := range byYear {
		list := make([]int64, len(m))
		for idx, u := range m {
			if idx < 0 || idx >= len(m) {
				return nil, ir.InconsistentTable("new moon indices in %d are not contiguous", first+y)
			}
			list[idx] = u
		}
		t.moons[y] = list
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that the table is self-consistent: moments strictly
// increasing with plausible gaps, every new moon inside its year, and 12 or
// 13 new moons per year.
func (t *Table) Validate() error {
	err := t.validate()
	if err != nil {
		slog.Error("reference table rejected", "first", t.first, "last", t.last, "error", err)
	}
	return err
}

func (t *Table) validate() error {
	var prev int64
	for y := t.first; y <= t.last; y++ {
		for i, u := range t.terms[y-t.first] {
			if time.Unix(u, 0).UTC().Year() != y {
				return ir.InconsistentTable("solar term %d of %d falls in another year", i, y)
			}
			if y == t.first && i == 0 {
				prev = u
				continue
			}
			gap := u - prev
			if gap <= 0 {
				return ir.InconsistentTable("solar term %d of %d is not after its predecessor", i, y)
			}
			if gap < minTermGap || gap > maxTermGap {
				return ir.InconsistentTable("solar term %d of %d is %.1f days after its predecessor", i, y, float64(gap)/86400)
			}
			prev = u
		}
	}

	havePrev := false
	for y := t.first; y <= t.last; y++ {
		ms := t.moons[y-t.first]
		if len(ms) < 12 || len(ms) > 13 {
			return ir.InconsistentTable("%d has %d new moons, want 12 or 13", y, len(ms))
		}
		for i, u := range ms {
			if time.Unix(u, 0).UTC().Year() != y {
				return ir.InconsistentTable("new moon %d of %d falls in another year", i, y)
			}
			if havePrev {
				gap := u - prev
				if gap <= 0 {
					return ir.InconsistentTable("new moon %d of %d is not after its predecessor", i, y)
				}
				if gap < minMoonGap || gap > maxMoonGap {
					return ir.InconsistentTable("new moon %d of %d is %.2f days after its predecessor", i, y, float64(gap)/86400)
				}
			}
			prev = u
			havePrev = true
		}
	}
	return nil
}

// FirstYear returns the first year in the table.
func (t *Table) FirstYear() int { return t.first }

// LastYear returns the last year in the table.
func (t *Table) LastYear() int { return t.last }

func (t *Table) checkYear(year int) error {
	if year < t.first || year > t.last {
		return ir.UnsupportedYear(year, t.first, t.last)
	}
	return nil
}

// SolarTermMoment implements Reference.
func (t *Table) SolarTermMoment(year, term int) (time.Time, error) {
	if err := t.checkYear(year); err != nil {
		return time.Time{}, err
	}
	if term < 0 || term >= TermsPerYear {
		return time.Time{}, ir.InvalidInput("solar term index %d out of range 0-23", term)
	}
	return time.Unix(t.terms[year-t.first][term], 0).UTC(), nil
}

// NewMoonMoment implements Reference.
func (t *Table) NewMoonMoment(year, idx int) (time.Time, error) {
	if err := t.checkYear(year); err != nil {
		return time.Time{}, err
	}
	ms := t.moons[year-t.first]
	if idx < 0 || idx >= len(ms) {
		return time.Time{}, ir.InvalidInput("lunation index %d out of range 0-%d for %d", idx, len(ms)-1, year)
	}
	return time.Unix(ms[idx], 0).UTC(), nil
}

// NewMoonCount implements Reference.
func (t *Table) NewMoonCount(year int) (int, error) {
	if err := t.checkYear(year); err != nil {
		return 0, err
	}
	return len(t.moons[year-t.first]), nil
}

// TermRows flattens the solar terms for persistence, ordered by moment.
func (t *Table) TermRows() []TermRow {
	rows := make([]TermRow, 0, len(t.terms)*TermsPerYear)
	for y, terms := range t.terms {
		for i, u := range terms {
			rows = append(rows, TermRow{Year: t.first + y, Term: i, Unix: u})
		}
	}
	return rows
}

// MoonRows flattens the new moons for persistence, ordered by moment.
func (t *Table) MoonRows() []MoonRow {
	var rows []MoonRow
	for y, ms := range t.moons {
		for i, u := range ms {
			rows = append(rows, MoonRow{Year: t.first + y, Index: i, Unix: u})
		}
	}
	return rows
}

// Fingerprint returns a content hash of the table, stable across the way
// it was built (computed or loaded).
func (t *Table) Fingerprint() (string, error) {
	terms := make([]any, 0, len(t.terms))
	for _, ts := range t.terms {
		row := make([]any, len(ts))
		for i, u := range ts {
			row[i] = u
		}
		terms = append(terms, row)
	}
	moons := make([]any, 0, len(t.moons))
	for _, ms := range t.moons {
		row := make([]any, len(ms))
		for i, u := range ms {
			row[i] = u
		}
		moons = append(moons, row)
	}
	h, err := ir.Fingerprint(ir.DomainTable, map[string]any{
		"first_year": t.first,
		"last_year":  t.last,
		"model":      ir.TableModel,
		"terms":      terms,
		"new_moons":  moons,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint table: %w", err)
	}
	return h, nil
}
