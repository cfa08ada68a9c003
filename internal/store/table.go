package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/ir"
)

// ErrNoTable is returned by LoadTable and TableFingerprint when nothing has
// been saved yet.
var ErrNoTable = errors.New("store: no reference table saved")

// Meta keys.
const (
	metaFirstYear     = "first_year"
	metaLastYear      = "last_year"
	metaModel         = "model"
	metaEngineVersion = "engine_version"
	metaFingerprint   = "fingerprint"
)

// SaveTable replaces the stored snapshot with t in a single transaction.
func (s *Store) SaveTable(ctx context.Context, t *astro.Table) error {
	fp, err := t.Fingerprint()
	if err != nil {
		return fmt.Errorf("save table: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save table: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, stmt := range []string{"DELETE FROM solar_terms", "DELETE FROM new_moons", "DELETE FROM meta"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("save table: clear: %w", err)
		}
	}

	termStmt, err := tx.PrepareContext(ctx, `INSERT INTO solar_terms (year, term, unix) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save table: prepare terms: %w", err)
	}
	defer termStmt.Close()
	for _, r := range t.TermRows() {
		if _, err := termStmt.ExecContext(ctx, r.Year, r.Term, r.Unix); err != nil {
			return fmt.Errorf("save table: term %d of %d: %w", r.Term, r.Year, err)
		}
	}

	moonStmt, err := tx.PrepareContext(ctx, `INSERT INTO new_moons (year, idx, unix) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save table: prepare new moons: %w", err)
	}
	defer moonStmt.Close()
	for _, r := range t.MoonRows() {
		if _, err := moonStmt.ExecContext(ctx, r.Year, r.Index, r.Unix); err != nil {
			return fmt.Errorf("save table: new moon %d of %d: %w", r.Index, r.Year, err)
		}
	}

	meta := map[string]string{
		metaFirstYear:     strconv.Itoa(t.FirstYear()),
		metaLastYear:      strconv.Itoa(t.LastYear()),
		metaModel:         ir.TableModel,
		metaEngineVersion: ir.EngineVersion,
		metaFingerprint:   fp,
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("save table: meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save table: commit: %w", err)
	}
	return nil
}

// LoadTable reads the snapshot back and validates it. The rebuilt table's
// fingerprint must equal the one stored at save time.
func (s *Store) LoadTable(ctx context.Context) (*astro.Table, error) {
	want, err := s.TableFingerprint(ctx)
	if err != nil {
		return nil, err
	}

	var terms []astro.TermRow
	rows, err := s.db.QueryContext(ctx, `SELECT year, term, unix FROM solar_terms ORDER BY year ASC, term ASC`)
	if err != nil {
		return nil, fmt.Errorf("load table: query terms: %w", err)
	}
	for rows.Next() {
		var r astro.TermRow
		if err := rows.Scan(&r.Year, &r.Term, &r.Unix); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load table: scan term: %w", err)
		}
		terms = append(terms, r)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("load table: terms: %w", err)
	}

	var moons []astro.MoonRow
	rows, err = s.db.QueryContext(ctx, `SELECT year, idx, unix FROM new_moons ORDER BY year ASC, idx ASC`)
	if err != nil {
		return nil, fmt.Errorf("load table: query new moons: %w", err)
	}
	for rows.Next() {
		var r astro.MoonRow
		if err := rows.Scan(&r.Year, &r.Index, &r.Unix); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load table: scan new moon: %w", err)
		}
		moons = append(moons, r)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("load table: new moons: %w", err)
	}

	t, err := astro.FromRows(terms, moons)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	got, err := t.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if got != want {
		return nil, ir.InconsistentTable("stored fingerprint %s does not match table contents %s", short(want), short(got))
	}
	return t, nil
}

// TableFingerprint returns the fingerprint recorded when the snapshot was
// saved, without reading the rows.
func (s *Store) TableFingerprint(ctx context.Context) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaFingerprint).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoTable
	}
	if err != nil {
		return "", fmt.Errorf("table fingerprint: %w", err)
	}
	return fp, nil
}

// Meta returns all snapshot metadata.
func (s *Store) Meta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}
	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return nil, fmt.Errorf("meta: scan: %w", err)
		}
		out[k] = v
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoTable
	}
	return out, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

func short(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
