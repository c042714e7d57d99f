package repository

import (
	"context"
	"encoding/json"
	"fmt"

	customError "github.com/segyhp/dealer-loans/pkg/errors"

	"github.com/jmoiron/sqlx"
)

// PostgresSchema creates the two tables backing every logical table: one row
// per logical table and one JSONB row per record, ordered by position.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS flat_tables (
	name       TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS flat_records (
	table_name TEXT    NOT NULL REFERENCES flat_tables (name) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	data       JSONB   NOT NULL,
	PRIMARY KEY (table_name, position)
);`

// PostgresStore is a TableStore over PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing tables when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, PostgresSchema); err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}

func (s *PostgresStore) LoadTable(ctx context.Context, name string) ([]Record, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM flat_tables WHERE name = $1)`
	if err := s.db.GetContext(ctx, &exists, query, name); err != nil {
		return nil, customError.WrapStorageError(err)
	}
	if !exists {
		return nil, customError.WrapNotFound("table", name)
	}

	var rows []string
	query = `
		SELECT data
		FROM flat_records
		WHERE table_name = $1
		ORDER BY position
	`
	if err := s.db.SelectContext(ctx, &rows, query, name); err != nil {
		return nil, customError.WrapStorageError(err)
	}

	records := make([]Record, 0, len(rows))
	for _, data := range rows {
		var r Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, customError.WrapStorageError(fmt.Errorf("decode %s record: %w", name, err))
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *PostgresStore) SaveTable(ctx context.Context, name string, records []Record, overwrite bool) error {
	if err := conform(name, records); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return customError.WrapStorageError(err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM flat_tables WHERE name = $1)`, name); err != nil {
		return customError.WrapStorageError(err)
	}
	if exists && !overwrite {
		return customError.WrapAlreadyExists("table", name)
	}
	if !exists {
		if _, err := tx.ExecContext(ctx, `INSERT INTO flat_tables (name) VALUES ($1)`, name); err != nil {
			return customError.WrapStorageError(err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM flat_records WHERE table_name = $1`, name); err != nil {
		return customError.WrapStorageError(err)
	}

	insert := `INSERT INTO flat_records (table_name, position, data) VALUES ($1, $2, $3)`
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return customError.WrapStorageError(err)
		}
		if _, err := tx.ExecContext(ctx, insert, name, i, string(data)); err != nil {
			return customError.WrapStorageError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}

func (s *PostgresStore) DropTable(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM flat_tables WHERE name = $1`, name)
	if err != nil {
		return customError.WrapStorageError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return customError.WrapStorageError(err)
	}
	if n == 0 {
		return customError.WrapNotFound("table", name)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}
