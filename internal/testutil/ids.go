package testutil

// FixedQueryID returns the same query id every time.
//
// Charts computed with it are byte-identical across runs, which golden
// snapshots depend on. Unlike engine.FixedGenerator, which hands out a
// finite sequence, it never runs out.
//
// Thread-safety: FixedQueryID is stateless and safe for concurrent use.
type FixedQueryID struct {
	id string
}

// NewFixedQueryID creates a generator for id.
//
// The id is typically set in the scenario YAML:
//
//	query_id: "test-query-0001"
//
// If id is empty, Generate() returns "test-query-default".
func NewFixedQueryID(id string) *FixedQueryID {
	if id == "" {
		id = "test-query-default"
	}
	return &FixedQueryID{id: id}
}

// Generate returns the fixed id.
//
// Implements engine.IDGenerator.
func (g *FixedQueryID) Generate() string {
	return g.id
}
