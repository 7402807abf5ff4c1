package chat

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/actionlog/internal/logging"
)

// Manager owns one session per user. Sessions never share an action log.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     options
}

// NewManager creates a manager with no sessions.
func NewManager(opts ...Option) *Manager {
	o := options{
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     o,
	}
}

// Session returns the user's session, creating it on first use.
func (m *Manager) Session(user string) (*Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrEmptyUser
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[user]; ok {
		return s, nil
	}
	s := newSession(user, m.opts)
	m.sessions[user] = s
	return s, nil
}

// Deliver queues a message from one user in another user's inbox.
func (m *Manager) Deliver(from, to, text string) (Message, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return Message{}, ErrEmptyUser
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	s, err := m.Session(to)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		ID:        uuid.New(),
		From:      from,
		Text:      text,
		Direction: Incoming,
		At:        m.opts.now(),
	}
	s.inbox.Enqueue(msg)
	return msg, nil
}

// Users returns the users with a session, sorted.
func (m *Manager) Users() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]string, 0, len(m.sessions))
	for user := range m.sessions {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}
