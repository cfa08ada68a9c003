package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/ir"
)

// Scenario is a named set of chart cases sharing one engine configuration.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Table selects the fixture reference table. Omitted means the full
	// default table.
	Table *TableRange `yaml:"table,omitempty"`

	// Policy is an optional CUE policy file, relative to the scenario file.
	Policy string `yaml:"policy,omitempty"`

	// QueryID is the fixed query id stamped on every chart.
	// If empty, defaults to "test-query-default".
	QueryID string `yaml:"query_id,omitempty"`

	// Cases are run in order against the same engine.
	Cases []Case `yaml:"cases"`
}

// TableRange is an inclusive Gregorian year range.
type TableRange struct {
	FirstYear int `yaml:"first_year"`
	LastYear  int `yaml:"last_year"`
}

// Case is a single query with its expectation.
type Case struct {
	Name   string    `yaml:"name"`
	Query  QuerySpec `yaml:"query"`
	Expect Expect    `yaml:"expect"`

	// Golden also compares the canonical chart against
	// testdata/golden/<scenario>_<case>.golden.
	Golden bool `yaml:"golden,omitempty"`
}

// QuerySpec is the YAML form of engine.Query.
type QuerySpec struct {
	// Date is YYYY-MM-DD. Ignored, apart from being optional, when Lunar is set.
	Date string `yaml:"date,omitempty"`

	// Time is HH:MM. Omitted means the hour is unknown.
	Time string `yaml:"time,omitempty"`

	Lunar     *engine.LunarInput `yaml:"lunar,omitempty"`
	Gender    string             `yaml:"gender,omitempty"`
	LuckCount int                `yaml:"luck_count,omitempty"`
}

// Expect is either an error code or a chart subset.
type Expect struct {
	// Error is the ir.ErrorCode the query must fail with.
	Error string `yaml:"error,omitempty"`

	// Chart is matched against the chart's canonical JSON.
	Chart map[string]any `yaml:"chart,omitempty"`
}

var errorCodes = map[string]bool{
	string(ir.ErrCodeUnsupportedYear):   true,
	string(ir.ErrCodeInvalidLunarDate):  true,
	string(ir.ErrCodeInvalidGender):     true,
	string(ir.ErrCodeInconsistentTable): true,
	string(ir.ErrCodeInvalidInput):      true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// The policy path is resolved relative to the file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos)
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Policy != "" && !filepath.IsAbs(scenario.Policy) {
		scenario.Policy = filepath.Join(filepath.Dir(path), scenario.Policy)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by file
// name. Subdirectories are not searched.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}

	out := make([]*Scenario, 0, len(names))
	seen := make(map[string]string)
	for _, n := range names {
		s, err := LoadScenario(filepath.Join(dir, n))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", n, s.Name, prev)
		}
		seen[s.Name] = n
		out = append(out, s)
	}
	return out, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Table != nil && s.Table.FirstYear > s.Table.LastYear {
		return fmt.Errorf("table: first_year %d is after last_year %d", s.Table.FirstYear, s.Table.LastYear)
	}
	if s.Policy != "" {
		if _, err := os.Stat(s.Policy); os.IsNotExist(err) {
			return fmt.Errorf("policy file not found: %s", s.Policy)
		}
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		names[c.Name] = true
		if c.Query.Date == "" && c.Query.Lunar == nil {
			return fmt.Errorf("cases[%d]: query needs date or lunar", i)
		}
		if c.Expect.Error == "" && len(c.Expect.Chart) == 0 && !c.Golden {
			return fmt.Errorf("cases[%d]: expect needs error or chart (or golden: true)", i)
		}
		if c.Expect.Error != "" {
			if !errorCodes[c.Expect.Error] {
				return fmt.Errorf("cases[%d]: unknown error code %q", i, c.Expect.Error)
			}
			if len(c.Expect.Chart) > 0 || c.Golden {
				return fmt.Errorf("cases[%d]: an error case cannot expect a chart", i)
			}
		}
		if strings.ContainsAny(c.Name, `/\`) {
			return fmt.Errorf("cases[%d]: name %q must not contain path separators", i, c.Name)
		}
	}
	return nil
}
