package docstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saadjs/fittrack/internal/db"
)

// SQLite stores leaves as rows of the nodes table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path string) (*Tree, error) {
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return NewTree(&SQLite{db: sqldb}), nil
}

func (s *SQLite) View(ctx context.Context, fn func(Txn) error) error {
	return s.run(ctx, fn, false)
}

func (s *SQLite) Update(ctx context.Context, fn func(Txn) error) error {
	return s.run(ctx, fn, true)
}

func (s *SQLite) run(ctx context.Context, fn func(Txn) error, commit bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(sqlTxn{ctx: ctx, tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if !commit {
		return tx.Rollback()
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

type sqlTxn struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t sqlTxn) Get(key string) ([]byte, bool, error) {
	var v string
	err := t.tx.QueryRowContext(t.ctx, `SELECT value FROM nodes WHERE path = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(v), true, nil
}

func (t sqlTxn) Put(key string, value []byte) error {
	_, err := t.tx.ExecContext(t.ctx, `
INSERT INTO nodes(path, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(path) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, string(value))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (t sqlTxn) Delete(key string) error {
	if _, err := t.tx.ExecContext(t.ctx, `DELETE FROM nodes WHERE path = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (t sqlTxn) Scan(prefix string, fn func(string, []byte) error) error {
	rows, err := t.tx.QueryContext(t.ctx, `SELECT path, value FROM nodes WHERE path >= ? AND path < ? ORDER BY path`, prefix, prefixEnd(prefix))
	if err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	type row struct {
		key   string
		value string
	}
	var out []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.key, &r.value); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan %s: %w", prefix, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	for _, r := range out {
		if err := fn(r.key, []byte(r.value)); err != nil {
			return err
		}
	}
	return nil
}

// prefixEnd returns the smallest string greater than every string that
// starts with prefix.
func prefixEnd(prefix string) string {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1])
		}
	}
	return "\xff"
}
