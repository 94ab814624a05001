// Package assistant keeps the chat sessions of the health assistant.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"healthdash/internal/insight"
	"healthdash/internal/logs"
	"healthdash/internal/metrics"
	"healthdash/internal/model"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBusy            = errors.New("assistant is still answering")
	ErrEmptyMessage    = errors.New("message is empty")
)

// Readings supplies the series questions are answered from.
type Readings interface {
	List() []model.Reading
}

// Config tunes the assistant.
type Config struct {
	// ThinkDelay is how long the assistant "types" before replying.
	ThinkDelay time.Duration
	// SessionTTL is how long an idle session is kept.
	SessionTTL time.Duration
}

// Session is one conversation and its append-only transcript.
type Session struct {
	ID         string              `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	LastActive time.Time           `json:"last_active"`
	Messages   []model.ChatMessage `json:"messages"`

	busy bool
}

func (s *Session) snapshot() Session {
	out := *s
	out.Messages = make([]model.ChatMessage, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// Manager owns all sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	readings  Readings
	generator *insight.Generator
	cfg       Config
	now       func() time.Time

	metrics *metrics.Registry
	logger  *logs.Logger
}

// NewManager creates a session manager answering from readings.
func NewManager(
	readings Readings,
	generator *insight.Generator,
	cfg Config,
	reg *metrics.Registry,
	logger *logs.Logger,
) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		readings:  readings,
		generator: generator,
		cfg:       cfg,
		now:       time.Now,
		metrics:   reg,
		logger:    logger,
	}
}

// SetClock replaces the manager's time source.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Create starts a session opened by the assistant's greeting.
func (m *Manager) Create() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastActive: now,
		Messages: []model.ChatMessage{
			model.NewChatMessage(model.RoleAssistant, insight.Greeting, now),
		},
	}
	m.sessions[s.ID] = s

	m.metrics.Inc(metrics.AssistantSessionsTotal)
	m.metrics.Set(metrics.AssistantSessionsActive, int64(len(m.sessions)))
	m.logger.Debugf("session %s created", s.ID)

	return s.snapshot()
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s.snapshot(), nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.metrics.Set(metrics.AssistantSessionsActive, int64(len(m.sessions)))
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Ask appends content to the session's transcript, waits the think delay
// and appends the assistant's reply, which it returns.
//
// A session answers one question at a time; asking while a reply is
// pending returns ErrBusy. If ctx ends during the delay the question
// stays in the transcript without a reply.
func (m *Manager) Ask(ctx context.Context, id, content string) (model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return model.ChatMessage{}, ErrSessionNotFound
	}
	if s.busy {
		m.mu.Unlock()
		m.metrics.Inc(metrics.AssistantBusyTotal)
		return model.ChatMessage{}, ErrBusy
	}
	now := m.now()
	s.Messages = append(s.Messages, model.NewChatMessage(model.RoleUser, content, now))
	s.LastActive = now
	s.busy = true
	m.mu.Unlock()

	m.metrics.Inc(metrics.AssistantMessagesTotal)

	if err := m.think(ctx); err != nil {
		m.mu.Lock()
		s.busy = false
		m.mu.Unlock()
		m.metrics.Inc(metrics.AssistantCancelledTotal)
		return model.ChatMessage{}, fmt.Errorf("session %s: %w", id, err)
	}

	answer := m.generator.Answer(content, m.readings.List())

	m.mu.Lock()
	defer m.mu.Unlock()

	s.busy = false
	if _, ok := m.sessions[id]; !ok {
		return model.ChatMessage{}, ErrSessionNotFound
	}

	now = m.now()
	reply := model.NewChatMessage(model.RoleAssistant, answer, now)
	s.Messages = append(s.Messages, reply)
	s.LastActive = now
	return reply, nil
}

// AskOnce answers a question without keeping a transcript.
func (m *Manager) AskOnce(ctx context.Context, question string) (model.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}

	m.metrics.Inc(metrics.AssistantMessagesTotal)

	if err := m.think(ctx); err != nil {
		m.metrics.Inc(metrics.AssistantCancelledTotal)
		return model.ChatMessage{}, err
	}

	answer := m.generator.Answer(question, m.readings.List())

	m.mu.Lock()
	now := m.now()
	m.mu.Unlock()

	return model.NewChatMessage(model.RoleAssistant, answer, now), nil
}

func (m *Manager) think(ctx context.Context) error {
	if m.cfg.ThinkDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.cfg.ThinkDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RemoveExpired drops sessions idle for longer than the session TTL and
// returns how many were removed. Sessions waiting on a reply are kept.
func (m *Manager) RemoveExpired() int {
	if m.cfg.SessionTTL <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, s := range m.sessions {
		if s.busy || now.Sub(s.LastActive) <= m.cfg.SessionTTL {
			continue
		}
		delete(m.sessions, id)
		removed++
	}

	if removed > 0 {
		m.metrics.Add(metrics.SessionsExpiredTotal, int64(removed))
		m.metrics.Set(metrics.AssistantSessionsActive, int64(len(m.sessions)))
	}
	return removed
}
