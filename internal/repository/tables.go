package repository

import (
	"context"
	"errors"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// InitTables creates the named tables empty, in the order given. With no
// names every table is created. Without overwrite an existing table fails
// with ErrAlreadyExists and the remaining tables are left alone.
func InitTables(ctx context.Context, store TableStore, names []string, overwrite bool) ([]string, error) {
	if len(names) == 0 {
		names = Tables()
	}
	for _, name := range names {
		if _, err := Columns(name); err != nil {
			return nil, err
		}
	}

	created := make([]string, 0, len(names))
	for _, name := range names {
		if err := store.SaveTable(ctx, name, []Record{}, overwrite); err != nil {
			return created, err
		}
		created = append(created, name)
	}
	return created, nil
}

// ClearTables drops every known table. Tables that do not exist are
// skipped.
func ClearTables(ctx context.Context, store TableStore) ([]string, error) {
	var dropped []string
	for _, name := range Tables() {
		err := store.DropTable(ctx, name)
		if errors.Is(err, customError.ErrNotFound) {
			continue
		}
		if err != nil {
			return dropped, err
		}
		dropped = append(dropped, name)
	}
	return dropped, nil
}
