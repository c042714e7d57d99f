package repository

import (
	"context"
	"sync"

	customError "github.com/segyhp/dealer-loans/pkg/errors"
)

// MemoryStore is a TableStore kept in process memory. It backs tests and the
// "memory" storage driver.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Record)}
}

func (s *MemoryStore) LoadTable(ctx context.Context, name string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.tables[name]
	if !ok {
		return nil, customError.WrapNotFound("table", name)
	}
	return cloneRecords(records), nil
}

func (s *MemoryStore) SaveTable(ctx context.Context, name string, records []Record, overwrite bool) error {
	if err := conform(name, records); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[name]; ok && !overwrite {
		return customError.WrapAlreadyExists("table", name)
	}
	s.tables[name] = cloneRecords(records)
	return nil
}

func (s *MemoryStore) DropTable(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[name]; !ok {
		return customError.WrapNotFound("table", name)
	}
	delete(s.tables, name)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
