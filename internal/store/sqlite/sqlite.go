// Package sqlite is the durable record store, backed by a single SQLite
// file. Amounts are stored as decimal strings so no float precision is
// lost on the way through the database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"gastos/internal/core"
	"gastos/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const selectColumns = "id, amount, category, description, date, kind"

func (s *Store) LoadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM records ORDER BY date, created_at")
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

func (s *Store) SaveAll(ctx context.Context, records []core.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for _, r := range records {
		if err := insertRecord(ctx, tx, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, r core.Record) error {
	return insertRecord(ctx, s.db, r)
}

func (s *Store) Update(ctx context.Context, r core.Record) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE records SET amount = ?, category = ?, description = ?, date = ?, kind = ? WHERE id = ?",
		r.Amount.String(), r.Category, r.Description, formatDate(r.Date), string(r.Kind), r.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return requireRow(res)
}

func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return requireRow(res)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRecord(ctx context.Context, db execer, r core.Record) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO records (id, amount, category, description, date, kind) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.Amount.String(), r.Category, r.Description, formatDate(r.Date), string(r.Kind))
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (core.Record, error) {
	var r core.Record
	var amount, date, kind string
	if err := rows.Scan(&r.ID, &amount, &r.Category, &r.Description, &date, &kind); err != nil {
		return core.Record{}, fmt.Errorf("scan record: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	r.Amount = parsed

	// A date that fails to parse deserializes as the zero time; the
	// aggregation layer degrades it instead of failing the whole load.
	if t, err := time.Parse(time.RFC3339Nano, date); err == nil {
		r.Date = t
	}

	r.Kind = core.Kind(kind)
	return r, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
