package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryKV is an in-memory KV for tests and local development. Every
// operation serializes on one mutex, which also makes Update atomic.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ KV = (*MemoryKV)(nil)

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (s *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryKV) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][]byte
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, append([]byte(nil), v...))
		}
	}
	return out, nil
}

func (s *MemoryKV) Update(ctx context.Context, key string, fn UpdateFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var old []byte
	if cur, ok := s.data[key]; ok {
		old = append([]byte(nil), cur...)
	}
	next, err := fn(old)
	if err != nil {
		return err
	}
	s.data[key] = next
	return nil
}

// Len reports the number of stored keys.
func (s *MemoryKV) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
