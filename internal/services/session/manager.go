package session

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/presenter"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/services/outcome"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

const (
	// MatchIDLength is the length of generated match IDs
	MatchIDLength = 8
)

var tracer = otel.Tracer("github.com/mcoot/tictactoe-go/internal/services/session")

// Session pairs a running match with the presenters watching it
type Session struct {
	Controller *match.Controller
	Viewers    *presenter.Fanout
}

// ID returns the match ID
func (s *Session) ID() model.MatchID {
	return s.Controller.ID()
}

// Attach registers p under key and replays the current state to it
func (s *Session) Attach(key string, p presenter.Presenter) {
	s.Viewers.Add(key, p)
	s.Controller.Render(p)
}

// Detach unregisters the presenter under key
func (s *Session) Detach(key string) {
	s.Viewers.Remove(key)
}

// Manager owns every live match in the process
type Manager struct {
	mu       sync.RWMutex
	sessions map[model.MatchID]*Session

	storage        storage.Storage
	outcomeService *outcome.Service
	botService     *bot.Service
	clock          clock.Clock
	random         random.Random
	config         match.Config
	baseLogger     *slog.Logger
	logger         *slog.Logger
}

// NewManager creates a Manager with no matches
func NewManager(
	storage storage.Storage,
	outcomeService *outcome.Service,
	botService *bot.Service,
	clock clock.Clock,
	random random.Random,
	config match.Config,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		sessions:       make(map[model.MatchID]*Session),
		storage:        storage,
		outcomeService: outcomeService,
		botService:     botService,
		clock:          clock,
		random:         random,
		config:         config,
		baseLogger:     logger,
		logger:         logger.With(slog.String("component", "session-manager")),
	}
}

// Create starts a new match awaiting its mode choice
func (m *Manager) Create(ctx context.Context) *Session {
	ctx, span := tracer.Start(ctx, "session.Create")
	defer span.End()

	m.mu.Lock()
	// Generate unique match ID
	var id model.MatchID
	for {
		id = model.MatchID(m.random.String(MatchIDLength, random.IDAlphabet))
		if _, exists := m.sessions[id]; !exists {
			break
		}
	}

	viewers := presenter.NewFanout()
	controller := match.NewController(id, m.config, viewers, m.storage, m.outcomeService, m.botService, m.clock, m.baseLogger)
	sess := &Session{Controller: controller, Viewers: viewers}
	m.sessions[id] = sess
	m.mu.Unlock()

	controller.Start(ctx)
	span.SetAttributes(attribute.String("match.id", string(id)))
	m.logger.Info("match created", slog.String("match_id", string(id)))
	return sess
}

// Get returns the session for id
func (m *Manager) Get(id model.MatchID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return sess, nil
}

// Remove stops the match and deletes its snapshot. It only fails when no
// live match has the id.
func (m *Manager) Remove(ctx context.Context, id model.MatchID) error {
	ctx, span := tracer.Start(ctx, "session.Remove", trace.WithAttributes(attribute.String("match.id", string(id))))
	defer span.End()

	m.mu.Lock()
	sess, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return model.ErrMatchNotFound
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	sess.Controller.Close()
	// The match is gone once it leaves the registry. A stale snapshot is
	// only logged.
	if err := m.storage.DeleteMatch(ctx, id); err != nil {
		span.RecordError(err)
		m.logger.Warn("failed to delete match snapshot",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	m.logger.Info("match removed", slog.String("match_id", string(id)))
	return nil
}

// Count returns the number of live matches
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops every live match
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		sess.Controller.Close()
		delete(m.sessions, id)
	}
}
