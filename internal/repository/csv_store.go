package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// CSVStore keeps every table as <dir>/<table>.csv with a header row.
// Saves go to a temporary file that is renamed over the target, so a table
// is either fully replaced or left as it was.
type CSVStore struct {
	dir string
}

func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

func (s *CSVStore) path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

func (s *CSVStore) LoadTable(ctx context.Context, name string) ([]Record, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, customError.WrapNotFound("table", name)
	}
	if err != nil {
		return nil, customError.WrapStorageError(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, customError.WrapStorageError(fmt.Errorf("read %s: %w", name, err))
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := make(Record, len(header))
		for i, col := range header {
			r[col] = row[i]
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *CSVStore) SaveTable(ctx context.Context, name string, records []Record, overwrite bool) error {
	if err := conform(name, records); err != nil {
		return err
	}
	cols, _ := Columns(name)

	target := s.path(name)
	if _, err := os.Stat(target); err == nil && !overwrite {
		return customError.WrapAlreadyExists("table", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return customError.WrapStorageError(err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.csv")
	if err != nil {
		return customError.WrapStorageError(err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(cols); err != nil {
		tmp.Close()
		return customError.WrapStorageError(err)
	}
	row := make([]string, len(cols))
	for _, r := range records {
		for i, c := range cols {
			row[i] = r[c]
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return customError.WrapStorageError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return customError.WrapStorageError(err)
	}
	if err := tmp.Close(); err != nil {
		return customError.WrapStorageError(err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}

func (s *CSVStore) DropTable(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return customError.WrapNotFound("table", name)
	}
	if err != nil {
		return customError.WrapStorageError(err)
	}
	return nil
}

// Ping reports whether the storage directory exists.
func (s *CSVStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return customError.WrapStorageError(err)
	}
	if !info.IsDir() {
		return customError.WrapStorageError(fmt.Errorf("%s is not a directory", s.dir))
	}
	return nil
}
