package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// MemoryStorage is an in-memory storage.Storage.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	SaveErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Save(_ context.Context, path string, file io.Reader) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

func (s *MemoryStorage) URL(_ context.Context, path string, _ bool) string {
	return fmt.Sprintf("https://storage.test/%s", path)
}

// Paths lists stored object keys in order.
func (s *MemoryStorage) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.objects))
	for p := range s.objects {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Object returns the stored bytes for path.
func (s *MemoryStorage) Object(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	return data, ok
}
