package repository

import (
	"context"
	"errors"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// codec maps one entity type onto the rows of a table.
type codec[T any] struct {
	table  string
	entity string
	key    func(T) int
	encode func(T) (Record, error)
	decode func(Record) (T, error)
}

// tableRepository implements load / get / insert / update for any entity as
// "load the full snapshot, change it in memory, save the full snapshot".
type tableRepository[T any] struct {
	store TableStore
	codec codec[T]
}

// loadAll returns every entity of the table. A table that was never
// initialized reads as empty.
func (r *tableRepository[T]) loadAll(ctx context.Context) ([]T, error) {
	records, err := r.store.LoadTable(ctx, r.codec.table)
	if errors.Is(err, customError.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := r.codec.decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *tableRepository[T]) get(ctx context.Context, id int) (T, error) {
	var zero T
	all, err := r.loadAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, v := range all {
		if r.codec.key(v) == id {
			return v, nil
		}
	}
	return zero, customError.WrapNotFound(r.codec.entity, id)
}

// insert appends v. A duplicate key fails before anything is written.
func (r *tableRepository[T]) insert(ctx context.Context, v T) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	id := r.codec.key(v)
	for _, existing := range all {
		if r.codec.key(existing) == id {
			return customError.WrapAlreadyExists(r.codec.entity, id)
		}
	}
	return r.save(ctx, append(all, v))
}

func (r *tableRepository[T]) update(ctx context.Context, v T) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	id := r.codec.key(v)
	for i, existing := range all {
		if r.codec.key(existing) == id {
			all[i] = v
			return r.save(ctx, all)
		}
	}
	return customError.WrapNotFound(r.codec.entity, id)
}

func (r *tableRepository[T]) save(ctx context.Context, all []T) error {
	records := make([]Record, 0, len(all))
	for _, v := range all {
		rec, err := r.codec.encode(v)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	return r.store.SaveTable(ctx, r.codec.table, records, true)
}
