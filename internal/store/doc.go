// Package store provides a SQLite snapshot of the astronomical reference
// table.
//
// The engine can always recompute the table from its ephemeris model; the
// snapshot lets a deployment pin the exact moments it serves and verify them
// later. A loaded snapshot goes through the same validation as a computed
// table, and its stored fingerprint must match the recomputed one, so a
// tampered or truncated file is rejected with INCONSISTENT_TABLE instead of
// producing wrong pillars.
//
// # Tables
//
//   - solar_terms(year, term, unix): 24 rows per year
//   - new_moons(year, idx, unix): 12 or 13 rows per year
//   - meta(key, value): first_year, last_year, model, engine_version,
//     fingerprint
//
// # Connection
//
// Every connection runs in WAL mode with synchronous=NORMAL, a five second
// busy timeout and foreign keys on. Schema upgrades are keyed on
// PRAGMA user_version and applied in order when the file is opened.
//
// Fingerprints are computed by astro.Table.Fingerprint over RFC 8785
// canonical JSON with SHA-256 domain separation (internal/ir/hash.go).
package store
