package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"catalogview/internal/catalog"
	applog "catalogview/internal/log"
)

// Session pairs a page with the controller that drives it.
type Session struct {
	ID         string
	Page       *Page
	Controller *catalog.Controller
}

// ControllerFactory builds the controller for a freshly created page.
type ControllerFactory func(view catalog.View) *catalog.Controller

// Store holds sessions by id. Idle sessions expire after ttl; the least recently
// used one is dropped once size is reached.
type Store struct {
	cache   *expirable.LRU[string, *Session]
	factory ControllerFactory
}

func NewStore(size int, ttl time.Duration, factory ControllerFactory) *Store {
	if size <= 0 {
		size = 1000
	}
	onEvict := func(id string, _ *Session) {
		applog.Info(nil, "session.evict", map[string]any{"sid": id})
	}
	return &Store{
		cache:   expirable.NewLRU[string, *Session](size, onEvict, ttl),
		factory: factory,
	}
}

// Get returns the session for id, creating a new one when id is unknown or expired.
// created is true when a new id was issued.
func (s *Store) Get(id string) (sess *Session, created bool) {
	if id != "" {
		if sess, ok := s.cache.Get(id); ok {
			// Re-adding restarts the idle timer.
			s.cache.Add(id, sess)
			return sess, false
		}
	}
	page := NewPage()
	sess = &Session{ID: uuid.NewString(), Page: page, Controller: s.factory(page)}
	s.cache.Add(sess.ID, sess)
	return sess, true
}

func (s *Store) Len() int { return s.cache.Len() }
