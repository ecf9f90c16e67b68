package testcasesrvc

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// InMemTestcaseRepo is the in-memory TestcaseRepo used in tests.
type InMemTestcaseRepo struct {
	mu     sync.RWMutex
	rows   map[int64][]Testcase // by problem id
	nextID int64
}

func NewInMemTestcaseRepo() *InMemTestcaseRepo {
	return &InMemTestcaseRepo{
		rows:   make(map[int64][]Testcase),
		nextID: 1,
	}
}

func (r *InMemTestcaseRepo) ReplaceAll(ctx context.Context, problemID int64, rows []Testcase) ([]Testcase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]Testcase, len(rows))
	for i, tc := range rows {
		if tc.ID == 0 {
			tc.ID = r.nextID
			r.nextID++
		}
		stored[i] = tc
	}
	r.rows[problemID] = stored
	return stored, nil
}

func (r *InMemTestcaseRepo) List(ctx context.Context, problemID int64) ([]Testcase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]Testcase, len(r.rows[problemID]))
	copy(rows, r.rows[problemID])
	return rows, nil
}

// InMemObjectStorage is the in-memory ObjectStorage used in tests.
type InMemObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewInMemObjectStorage() *InMemObjectStorage {
	return &InMemObjectStorage{objects: make(map[string][]byte)}
}

func (s *InMemObjectStorage) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), content...)
	return "mem://" + key, nil
}

func (s *InMemObjectStorage) Download(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return append([]byte(nil), content...), nil
}

func (s *InMemObjectStorage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *InMemObjectStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
