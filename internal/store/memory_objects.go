package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"helheim/internal/domain"
)

type memoryObject struct {
	content    []byte
	modifiedAt time.Time
}

// MemoryObjectStore is an in-memory domain.ObjectStore for tests and local
// development.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryObjectStore creates an empty in-memory object store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string]memoryObject)}
}

// List returns the objects under prefix in key order.
func (s *MemoryObjectStore) List(_ context.Context, prefix string) ([]domain.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var infos []domain.ObjectInfo
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, domain.ObjectInfo{Key: key, ModifiedAt: obj.modifiedAt})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Get returns the object content, reporting absence via ok.
func (s *MemoryObjectStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, false, nil
	}
	content := make([]byte, len(obj.content))
	copy(content, obj.content)
	return content, true, nil
}

// Put stores the object content.
func (s *MemoryObjectStore) Put(_ context.Context, key string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(content))
	copy(stored, content)
	s.objects[key] = memoryObject{content: stored, modifiedAt: time.Now().UTC()}
	return nil
}

// Copy duplicates the object at srcKey to dstKey.
func (s *MemoryObjectStore) Copy(_ context.Context, srcKey, dstKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.objects[srcKey]
	if !ok {
		return &domain.NotFoundError{Message: "source object " + srcKey + " not found"}
	}
	content := make([]byte, len(src.content))
	copy(content, src.content)
	s.objects[dstKey] = memoryObject{content: content, modifiedAt: time.Now().UTC()}
	return nil
}

// Delete removes the object; absent keys are a no-op.
func (s *MemoryObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
