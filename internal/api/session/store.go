// internal/api/session/store.go
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/dashboard"
)

// CookieName is the cookie carrying the session id.
const CookieName = "treasury_session"

// Session is one browser's dashboard.
type Session struct {
	ID         string
	Controller *dashboard.Controller
	CreatedAt  time.Time
	LastSeen   time.Time
}

// Store keeps sessions in memory. Sessions idle longer than the TTL are
// dropped, and the least recently created one is evicted at capacity.
type Store struct {
	sessions map[string]*Session
	order    []string // Track insertion order for eviction
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	onCount  func(int)
	mu       sync.Mutex
}

// NewStore creates a new session store. A zero ttl never expires sessions.
func NewStore(maxSize int, ttl time.Duration) *Store {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Store{
		sessions: make(map[string]*Session),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnCountChange registers fn to receive the live session count whenever
// creation, eviction or expiry changes it. fn runs under the store lock.
func (s *Store) OnCountChange(fn func(count int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onCount = fn
	if fn != nil {
		fn(len(s.sessions))
	}
}

// Create stores a new session owning c and returns it.
func (s *Store) Create(c *dashboard.Controller) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.reportLocked(len(s.sessions))
	s.expireLocked()

	now := s.now()
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: c,
		CreatedAt:  now,
		LastSeen:   now,
	}

	// Evict oldest if at capacity
	for len(s.sessions) >= s.maxSize && len(s.order) > 0 {
		oldest := s.order[0]
		delete(s.sessions, oldest)
		s.order = s.order[1:]
	}

	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)

	return sess
}

// Get returns the session with id and marks it as seen.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		s.removeLocked(id)
		s.reportLocked(len(s.sessions) + 1)
		return nil, core.ErrSessionNotFound
	}
	sess.LastSeen = now
	return sess, nil
}

// FromRequest returns the session named by the request cookie.
func (s *Store) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, core.ErrSessionNotFound
	}
	return s.Get(cookie.Value)
}

// SetCookie writes the session cookie for sess.
func (s *Store) SetCookie(w http.ResponseWriter, sess *Session) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.ttl > 0 {
		cookie.MaxAge = int(s.ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.sessions)
	s.expireLocked()
	s.reportLocked(before)
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastSeen) > s.ttl
}

func (s *Store) expireLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			s.removeLocked(id)
		}
	}
}

func (s *Store) reportLocked(before int) {
	if s.onCount != nil && len(s.sessions) != before {
		s.onCount(len(s.sessions))
	}
}

func (s *Store) removeLocked(id string) {
	delete(s.sessions, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
