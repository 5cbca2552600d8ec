package quote

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/services"
)

// Book keeps the live sessions of a process, keyed by session ID.
type Book struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	loader   Loader
	log      *zap.Logger
}

func NewBook(loader Loader, log *zap.Logger) *Book {
	if log == nil {
		log = zap.NewNop()
	}
	return &Book{sessions: make(map[string]*Session), loader: loader, log: log}
}

// Open starts a session for the service.
func (b *Book) Open(id services.ID) (*Session, error) {
	def, ok := services.Lookup(id)
	if !ok {
		return nil, apperrors.NotFound("service", string(id))
	}
	s := NewSession(def, b.loader, b.log)

	b.mu.Lock()
	b.sessions[s.ID()] = s
	b.mu.Unlock()
	return s, nil
}

func (b *Book) Get(id string) (*Session, error) {
	b.mu.RLock()
	s, ok := b.sessions[id]
	b.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	return s, nil
}

// Close drops a session. Closing an unknown session is a no-op.
func (b *Book) Close(id string) {
	b.mu.Lock()
	delete(b.sessions, id)
	b.mu.Unlock()
}

// ForService lists the live sessions of a service sorted by ID.
func (b *Book) ForService(id services.ID) []*Session {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*Session
	for _, s := range b.sessions {
		if s.Service() == id {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
