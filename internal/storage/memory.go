package storage

import (
	"context"
	"fmt"
	"sync"
)

type memObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps objects in a map. Used in tests and local development
// without an S3 backend.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memObject)}
}

func (s *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = memObject{data: buf, contentType: contentType}
	return nil
}

func (s *MemoryStore) PresignedGetURL(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("object %q not found", key)
	}
	return "memory://" + key, nil
}

// Object returns the stored content and content type for key.
func (s *MemoryStore) Object(key string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	return obj.data, obj.contentType, ok
}
