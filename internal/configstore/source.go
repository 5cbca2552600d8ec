// Package configstore loads the admin-edited pricing config of each service
// and keeps the last good one around when the store misbehaves.
package configstore

import (
	"context"
	"errors"
	"sync"

	"github.com/Simplici0/sanquote/internal/services"
)

// ErrNotFound means the store holds no document for a service.
var ErrNotFound = errors.New("config document not found")

// Source fetches the raw JSON config document of a service.
type Source interface {
	Fetch(ctx context.Context, id services.ID) ([]byte, error)
}

// StaticSource serves documents from memory.
type StaticSource struct {
	mu   sync.RWMutex
	docs map[services.ID][]byte
}

func NewStaticSource(docs map[services.ID][]byte) *StaticSource {
	s := &StaticSource{docs: make(map[services.ID][]byte, len(docs))}
	for id, doc := range docs {
		s.docs[id] = append([]byte(nil), doc...)
	}
	return s
}

func (s *StaticSource) Fetch(ctx context.Context, id services.ID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *StaticSource) Put(id services.ID, doc []byte) {
	s.mu.Lock()
	s.docs[id] = append([]byte(nil), doc...)
	s.mu.Unlock()
}
