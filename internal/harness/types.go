package harness

import "github.com/roach88/saju/internal/engine"

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name   string        `json:"name"`
	Pass   bool          `json:"pass"`
	Errors []string      `json:"errors,omitempty"`
	Chart  *engine.Chart `json:"chart,omitempty"`
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true if every case passed.
	Pass bool `json:"pass"`

	// Cases holds per-case results in scenario order.
	Cases []CaseResult `json:"cases"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Cases: []CaseResult{}}
}

// Add appends a case result, failing the scenario if the case failed.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		r.Pass = false
	}
}

// Errors flattens failures as "case: message".
func (r *Result) Errors() []string {
	var out []string
	for _, c := range r.Cases {
		for _, e := range c.Errors {
			out = append(out, c.Name+": "+e)
		}
	}
	return out
}
