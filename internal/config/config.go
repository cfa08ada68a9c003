package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/luck"
	"github.com/roach88/saju/internal/pillar"
)

//go:embed schema.cue
var schemaCUE string

// Policy is a decoded policy file. Nil fields were not set.
type Policy struct {
	DayBoundary      *string     `json:"day_boundary,omitempty"`
	AgeRule          *string     `json:"age_rule,omitempty"`
	UTCOffsetMinutes *int        `json:"utc_offset_minutes,omitempty"`
	Luck             *LuckPolicy `json:"luck,omitempty"`
}

// LuckPolicy holds the luck section.
type LuckPolicy struct {
	SpanYears *int `json:"span_years,omitempty"`
	Count     *int `json:"count,omitempty"`
}

// Error is a policy file failure, with the CUE position when one is known.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var knownFields = map[string]map[string]bool{
	"":     {"day_boundary": true, "age_rule": true, "utc_offset_minutes": true, "luck": true},
	"luck": {"span_years": true, "count": true},
}

// Load reads and validates the policy file at path.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return Parse(path, data)
}

// Parse validates CUE source against the schema. filename is only used
// in error positions.
func Parse(filename string, src []byte) (*Policy, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile policy schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Policy"))

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := checkFields(v, ""); err != nil {
		return nil, err
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var p Policy
	if err := unified.Decode(&p); err != nil {
		return nil, formatCUEError(err)
	}
	return &p, nil
}

// checkFields rejects labels the schema does not know, so a misspelt key
// fails instead of silently keeping a default.
func checkFields(v cue.Value, prefix string) error {
	allowed := knownFields[prefix]
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		label := iter.Selector().String()
		field := label
		if prefix != "" {
			field = prefix + "." + label
		}
		if !allowed[label] {
			return &Error{
				Field:   field,
				Message: fmt.Sprintf("unknown field (allowed: %s)", strings.Join(sortedKeys(allowed), ", ")),
				Pos:     iter.Value().Pos(),
			}
		}
		if _, nested := knownFields[label]; nested && prefix == "" {
			if err := checkFields(iter.Value(), label); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options converts the policy into engine options. Unset fields produce no
// option.
func (p *Policy) Options() ([]engine.Option, error) {
	var opts []engine.Option
	if p.DayBoundary != nil {
		b, err := pillar.ParseDayBoundary(*p.DayBoundary)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithDayBoundary(b))
	}
	if p.AgeRule != nil {
		r, err := luck.ParseAgeRule(*p.AgeRule)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithAgeRule(r))
	}
	if p.UTCOffsetMinutes != nil {
		opts = append(opts, engine.WithLocation(FixedZone(*p.UTCOffsetMinutes)))
	}
	if p.Luck != nil {
		if p.Luck.SpanYears != nil {
			opts = append(opts, engine.WithLuckSpan(*p.Luck.SpanYears))
		}
		if p.Luck.Count != nil {
			opts = append(opts, engine.WithLuckCount(*p.Luck.Count))
		}
	}
	return opts, nil
}

// FixedZone names a fixed offset the way it prints in charts, e.g.
// "UTC+09:00" or "UTC-03:30".
func FixedZone(minutes int) *time.Location {
	sign := '+'
	abs := minutes
	if minutes < 0 {
		sign = '-'
		abs = -minutes
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, minutes*60)
}

// formatCUEError keeps the position of the first CUE error.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
