package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// DefaultGoldenDir is where scenario snapshots live, relative to the
// package under test.
const DefaultGoldenDir = "testdata/golden"

// GoldenName is the snapshot name of a case: <scenario>_<case>.
func GoldenName(s *Scenario, c Case) string {
	return s.Name + "_" + c.Name
}

// RunWithGolden runs a scenario as subtests, failing t on every mismatch.
// Cases marked golden are also compared against dir/<scenario>_<case>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario, dir string) error {
	t.Helper()

	h, err := New(s)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(dir),
		goldie.WithNameSuffix(".golden"),
	)
	for _, c := range s.Cases {
		t.Run(c.Name, func(t *testing.T) {
			res := h.RunCase(c)
			for _, e := range res.Errors {
				t.Error(e)
			}
			if !c.Golden || res.Chart == nil {
				return
			}
			data, err := res.Chart.Canonical()
			if err != nil {
				t.Fatalf("canonical chart: %v", err)
			}
			g.Assert(t, GoldenName(s, c), data)
		})
	}
	return nil
}

// AssertGolden compares an already computed case against its snapshot.
func AssertGolden(t *testing.T, dir, name string, res CaseResult) error {
	t.Helper()
	if res.Chart == nil {
		return fmt.Errorf("case %s produced no chart", res.Name)
	}
	data, err := res.Chart.Canonical()
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir(dir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
