package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taskboard/core/internal/application/scheduler"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// Event types pushed to a session's subscriber.
const (
	EventStoreChanged       = "store_changed"
	EventPersistenceWarning = "persistence_warning"
)

// changeFlushDelay defers the store-changed notification by one tick
// so a synchronous burst of mutations collapses into one event.
const changeFlushDelay = 10 * time.Millisecond

// Event is a notification pushed to the session's driver.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// Session binds one logged-in user to their loaded store. All store
// access goes through the session's lock; the store has a single
// owner but the HTTP driver is concurrent.
type Session struct {
	ID      string
	User    *entities.User
	Store   *entities.Store
	mu      sync.Mutex
	events  chan Event
	changes *scheduler.Coalescer
	closed  bool
}

func newSession(user *entities.User, store *entities.Store) *Session {
	s := &Session{
		ID:     entities.NewID(),
		User:   user,
		Store:  store,
		events: make(chan Event, 16),
	}
	s.changes = scheduler.NewCoalescer(changeFlushDelay, func() {
		s.emit(Event{Type: EventStoreChanged})
	})
	return s
}

// Events is the session's notification stream.
func (s *Session) Events() <-chan Event {
	return s.events
}

// NotifyChanged requests a coalesced store-changed event.
func (s *Session) NotifyChanged() {
	s.changes.Request()
}

// emit delivers an event without blocking; a slow or absent subscriber
// drops notifications rather than stalling mutations.
func (s *Session) emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitLocked(ev)
}

// emitLocked is emit for callers already holding the session lock.
func (s *Session) emitLocked(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// SessionService handles the login/logout lifecycle
type SessionService struct {
	directory ports.UserDirectory
	gateway   ports.StoreGateway
	logger    *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session // session id -> session
	byUser   map[string]string   // user id -> active session id
}

// NewSessionService creates a new session service
func NewSessionService(directory ports.UserDirectory, gateway ports.StoreGateway, logger *logger.Logger) *SessionService {
	return &SessionService{
		directory: directory,
		gateway:   gateway,
		logger:    logger,
		sessions:  make(map[string]*Session),
		byUser:    make(map[string]string),
	}
}

// Login validates the display name against the fixed directory, loads
// the user's persisted store and opens a session. A store has exactly
// one owner: logging the same user in again supersedes the previous
// session after a best-effort save.
func (s *SessionService) Login(ctx context.Context, req ports.LoginRequest) (*ports.SessionInfo, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, entities.NewValidationError("login.name_required", "display name is required")
	}

	user, err := s.directory.FindByDisplayName(name)
	if err != nil {
		return nil, err
	}

	store, err := s.gateway.Load(ctx, user.ID)
	if err != nil {
		// Load never fails the login; the session starts from an
		// empty store and persists over it on the next mutation.
		s.logger.LogPersistenceFailure(user.ID, "load", err)
		store = entities.NewStore()
	}
	if store == nil {
		store = entities.NewStore()
	}

	sess := newSession(user, store)

	s.mu.Lock()
	if oldID, ok := s.byUser[user.ID]; ok {
		if old, ok := s.sessions[oldID]; ok {
			s.persist(ctx, old)
			old.close()
			delete(s.sessions, oldID)
		}
	}
	s.sessions[sess.ID] = sess
	s.byUser[user.ID] = sess.ID
	s.mu.Unlock()

	s.logger.Info("Session opened", "user_id", user.ID, "session_id", sess.ID)

	return &ports.SessionInfo{ID: sess.ID, User: user}, nil
}

// Logout saves the store a final time and tears the session down.
// The save is best-effort; a failure is logged but does not keep the
// session alive.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return entities.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.byUser, sess.User.ID)
	s.mu.Unlock()

	s.persist(ctx, sess)
	sess.close()

	s.logger.Info("Session closed", "user_id", sess.User.ID, "session_id", sessionID)

	return nil
}

// Resolve returns the caller-visible view of an active session.
func (s *SessionService) Resolve(sessionID string) (*ports.SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return &ports.SessionInfo{ID: sess.ID, User: sess.User}, nil
}

// Events returns a session's notification stream for the driver's
// event push.
func (s *SessionService) Events(sessionID string) (<-chan Event, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Events(), nil
}

// session returns the live session for use by the store and search
// services.
func (s *SessionService) session(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) persist(ctx context.Context, sess *Session) {
	if err := s.gateway.Save(ctx, sess.User.ID, sess.Store); err != nil {
		s.logger.LogPersistenceFailure(sess.User.ID, "save", err)
	}
}
