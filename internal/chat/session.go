package chat

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/dshills/actionlog/internal/actionlog"
	"github.com/dshills/actionlog/internal/logging"
	"github.com/dshills/actionlog/internal/metrics"
)

// KindSend tags sent messages in a session's action log.
const KindSend actionlog.Kind = "send message"

// Errors returned by sessions.
var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrEmptyUser     = errors.New("user name is empty")
	ErrNothingToUndo = errors.New("no sent message to undo")
	ErrNothingToRedo = errors.New("no unsent message to redo")
)

// Session is one user's conversation. It is safe for concurrent use.
type Session struct {
	user  string
	inbox *Inbox

	mu         sync.Mutex // Serializes transcript changes with their log moves
	transcript []Message

	sent *actionlog.Synchronized[Message]

	logger log.Logger
	now    func() time.Time
}

func newSession(user string, o options) *Session {
	return &Session{
		user:   user,
		inbox:  &Inbox{},
		sent:   actionlog.NewSynchronized(actionlog.WithObserver(metrics.Observer[Message](o.metrics, "chat"))),
		logger: log.With(o.logger, "user", user),
		now:    o.now,
	}
}

// User returns the session's user name.
func (s *Session) User() string {
	return s.user
}

// Inbox returns the session's queue of incoming messages.
func (s *Session) Inbox() *Inbox {
	return s.inbox
}

// Send appends an outgoing message to the transcript and records it.
// Sending discards any message that was undone and not yet redone.
func (s *Session) Send(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	msg := Message{
		ID:        uuid.New(),
		From:      s.user,
		Text:      text,
		Direction: Outgoing,
		At:        s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, msg)
	a := actionlog.NewAction(KindSend, msg, msg).At(msg.At)
	a.ID = msg.ID
	s.sent.Record(a)

	level.Debug(s.logger).Log("msg", "sent", "id", msg.ID, "text", text)
	return msg, nil
}

// Receive moves the next inbox message into the transcript.
// Received messages are not undoable.
func (s *Session) Receive() (Message, bool) {
	msg, ok := s.inbox.Dequeue()
	if !ok {
		return Message{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)

	level.Debug(s.logger).Log("msg", "received", "from", msg.From, "id", msg.ID)
	return msg, true
}

// ReceiveAll drains the inbox into the transcript and returns how many
// messages were received.
func (s *Session) ReceiveAll() int {
	n := 0
	for {
		if _, ok := s.Receive(); !ok {
			return n
		}
		n++
	}
}

// Undo takes back the most recently sent message.
func (s *Session) Undo() (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.sent.Undo()
	if !ok {
		return Message{}, ErrNothingToUndo
	}
	s.transcript = slices.DeleteFunc(s.transcript, func(m Message) bool {
		return m.ID == a.Inverse.ID
	})

	level.Info(s.logger).Log("msg", "unsent", "id", a.Inverse.ID)
	return a.Inverse, nil
}

// Redo sends the most recently undone message again. It goes back at the
// end of the transcript with its original timestamp.
func (s *Session) Redo() (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.sent.Redo()
	if !ok {
		return Message{}, ErrNothingToRedo
	}
	s.transcript = append(s.transcript, a.Forward)

	level.Info(s.logger).Log("msg", "resent", "id", a.Forward.ID)
	return a.Forward, nil
}

// Transcript returns a copy of the conversation in display order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}

// Sent returns the messages currently in effect as sends, oldest first.
func (s *Session) Sent() iter.Seq[Message] {
	return func(yield func(Message) bool) {
		for a := range s.sent.History() {
			if !yield(a.Forward) {
				return
			}
		}
	}
}

// State reports the undo/redo state of the session's sends.
func (s *Session) State() actionlog.State {
	return s.sent.State()
}

type options struct {
	logger  log.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(logger)
	}
}

// WithMetrics counts send/undo/redo operations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock sets the time source for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
