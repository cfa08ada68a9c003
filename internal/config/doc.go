// Package config loads engine policy files.
//
// A policy file is CUE, checked against the embedded #Policy schema:
//
//	day_boundary:       "midnight"
//	age_rule:           "proportional"
//	utc_offset_minutes: 480
//	luck: {span_years: 10, count: 6}
//
// Load returns a Policy whose Options feed engine.New.
package config
