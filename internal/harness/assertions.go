package harness

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/ir"
)

// AssertionError is returned when a case does not produce what it expects.
type AssertionError struct {
	Path     string // JSON path of the mismatch, e.g. pillars.hour.pillar
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}
	return fmt.Sprintf("%s: expected %s, got %s", path, e.Expected, e.Actual)
}

// chartValue decodes a chart into the generic form expectations are
// matched against: maps, slices, strings, bools and int64.
func chartValue(c *engine.Chart) (any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal chart: %w", err)
	}
	return ir.CanonicalFromJSON(data)
}

// assertChart matches expected against the chart and returns every mismatch.
func assertChart(c *engine.Chart, expected map[string]any) []error {
	actual, err := chartValue(c)
	if err != nil {
		return []error{err}
	}
	return matchValue("", actual, expected)
}

// assertError checks that err carries the expected ir.ErrorCode.
func assertError(err error, code string) error {
	if err == nil {
		return &AssertionError{Path: "error", Expected: code, Actual: "no error"}
	}
	if got := string(ir.CodeOf(err)); got != code {
		if got == "" {
			got = "untyped error"
		}
		return &AssertionError{Path: "error", Expected: code, Actual: fmt.Sprintf("%s (%v)", got, err)}
	}
	return nil
}

// matchValue compares expected against actual. Maps are subset matches,
// lists prefix matches, and a nil expectation requires actual to be absent.
func matchValue(path string, actual, expected any) []error {
	switch want := expected.(type) {
	case nil:
		if actual != nil {
			return []error{&AssertionError{Path: path, Expected: "absent", Actual: describe(actual)}}
		}
		return nil

	case map[string]any:
		got, ok := actual.(map[string]any)
		if !ok {
			return []error{&AssertionError{Path: path, Expected: "object", Actual: describe(actual)}}
		}
		keys := make([]string, 0, len(want))
		for k := range want {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var errs []error
		for _, k := range keys {
			errs = append(errs, matchValue(join(path, k), got[k], want[k])...)
		}
		return errs

	case []any:
		got, ok := actual.([]any)
		if !ok {
			return []error{&AssertionError{Path: path, Expected: "list", Actual: describe(actual)}}
		}
		if len(got) < len(want) {
			return []error{&AssertionError{
				Path:     path,
				Expected: fmt.Sprintf("at least %d items", len(want)),
				Actual:   fmt.Sprintf("%d items", len(got)),
			}}
		}
		var errs []error
		for i := range want {
			errs = append(errs, matchValue(fmt.Sprintf("%s[%d]", path, i), got[i], want[i])...)
		}
		return errs
	}

	w, err := scalar(expected)
	if err != nil {
		return []error{&AssertionError{Path: path, Expected: describe(expected), Actual: err.Error()}}
	}
	if actual == nil {
		return []error{&AssertionError{Path: path, Expected: describe(w), Actual: "absent"}}
	}
	if w != actual {
		return []error{&AssertionError{Path: path, Expected: describe(w), Actual: describe(actual)}}
	}
	return nil
}

// scalar maps YAML scalars onto the types CanonicalFromJSON produces.
func scalar(v any) (any, error) {
	switch x := v.(type) {
	case string, bool, int64:
		return x, nil
	case int:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float64:
		if x != float64(int64(x)) {
			return nil, fmt.Errorf("charts hold no fractional numbers")
		}
		return int64(x), nil
	}
	return nil, fmt.Errorf("unsupported expectation type %T", v)
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "absent"
	case string:
		return fmt.Sprintf("%q", x)
	case map[string]any:
		return "object"
	case []any:
		return fmt.Sprintf("list of %d", len(x))
	}
	return fmt.Sprintf("%v", v)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	if strings.ContainsAny(key, ".[") {
		return fmt.Sprintf("%s[%q]", path, key)
	}
	return path + "." + key
}
