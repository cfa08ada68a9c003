// Package harness runs chart scenarios against the engine.
//
// A scenario is a YAML file naming a fixture table, an optional CUE policy
// file and a list of cases. Each case is a query plus either the error code
// it must fail with or a subset of the chart it must produce:
//
//	name: reference_chart
//	description: Female born 1990-05-15 14:00 KST
//	table: {first_year: 1989, last_year: 1992}
//	cases:
//	  - name: afternoon
//	    query: {date: "1990-05-15", time: "14:00", gender: female}
//	    expect:
//	      chart:
//	        pillars:
//	          year: {pillar: 庚午}
//	          hour: {pillar: 癸未}
//
// Expectations are matched against the chart's canonical JSON. Maps match
// as subsets, lists match as prefixes, and a null expects the member to be
// absent. Cases marked golden are also compared byte for byte against a
// goldie snapshot of the canonical chart.
//
// Query ids come from testutil.FixedQueryID so snapshots are reproducible.
package harness
