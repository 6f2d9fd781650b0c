package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"eventflow/internal/domain"
)

type tableStore struct {
	mu      sync.RWMutex
	tables  map[string][]domain.Row
	nextNum int64
}

// NewTableStore returns an in-process domain.TableStore with the given tables created empty.
func NewTableStore(tables ...string) domain.TableStore {
	s := &tableStore{tables: make(map[string][]domain.Row, len(tables))}
	for _, t := range tables {
		s.tables[t] = nil
	}
	return s
}

func (s *tableStore) Read(_ context.Context, table string) ([]domain.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	out := make([]domain.Row, len(rows))
	for i, r := range rows {
		out[i] = domain.Row{Num: r.Num, Cells: append([]string(nil), r.Cells...)}
	}
	return out, nil
}

func (s *tableStore) Append(_ context.Context, table string, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	s.nextNum++
	s.tables[table] = append(rows, domain.Row{Num: s.nextNum, Cells: append([]string(nil), cells...)})
	return nil
}

func (s *tableStore) UpsertByKey(_ context.Context, table, key string, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	for i, r := range rows {
		if strings.TrimSpace(r.Cell(0)) == key {
			rows[i].Cells = append([]string(nil), cells...)
			return nil
		}
	}
	s.nextNum++
	s.tables[table] = append(rows, domain.Row{Num: s.nextNum, Cells: append([]string(nil), cells...)})
	return nil
}

func (s *tableStore) UpdateRow(_ context.Context, table string, rowNum int64, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTableNotFound, table)
	}
	for i, r := range rows {
		if r.Num == rowNum {
			rows[i].Cells = append([]string(nil), cells...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s row %d", domain.ErrRowNotFound, table, rowNum)
}
