// Package ir provides the foundational value types shared by every SAJU
// package: civil and lunisolar dates, gender, typed errors, canonical JSON and
// content fingerprints.
//
// This package imports nothing internal. All other internal packages may
// import ir; ir never imports them. This keeps it the bottom layer with no
// circular dependencies.
//
// Key design constraints:
//   - Dates are plain values; no time.Time crosses the query boundary
//   - Errors carry a stable Code so callers branch on kind, not message
//   - All JSON tags use snake_case
//   - Canonical JSON forbids floats and null so fingerprints are stable
package ir
