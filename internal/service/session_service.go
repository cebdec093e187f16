package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionService is the registry of live planning sessions. Sessions live in memory only
// and are dropped after IdleTTL without access.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*planner.Session

	idleTTL time.Duration
	opts    []planner.ItineraryOption
	now     func() time.Time
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewSessionService creates an empty registry. opts apply to every new itinerary.
func NewSessionService(idleTTL time.Duration, logger *zap.Logger, opts ...planner.ItineraryOption) *SessionService {
	return &SessionService{
		sessions: make(map[string]*planner.Session),
		idleTTL:  idleTTL,
		opts:     opts,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a new session
func (s *SessionService) Create() *planner.Session {
	sess := planner.NewSession(uuid.NewString(), s.opts...)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session_id", sess.ID))
	return sess
}

// Get returns a live session
func (s *SessionService) Get(id string) (*planner.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Delete ends a session
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were dropped
func (s *SessionService) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if sess.LastAccess().Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}

	if dropped > 0 {
		s.logger.Info("idle sessions swept", zap.Int("dropped", dropped), zap.Int("live", len(s.sessions)))
	}
	return dropped
}

// StartSweeper runs Sweep on a cron schedule such as "@every 10m"
func (s *SessionService) StartSweeper(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	return nil
}

// StopSweeper stops the schedule and waits for a running sweep
func (s *SessionService) StopSweeper(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
