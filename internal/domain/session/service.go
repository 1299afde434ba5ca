package session

import (
	"log/slog"
	"maps"
	"sync"
	"time"
)

// Service tracks review sessions and their per-project risk flags in memory.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	logger   *slog.Logger
}

// NewService creates a new session service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		sessions: make(map[string]*Session),
		now:      time.Now,
		logger:   logger,
	}
}

// ToggleRisk flips the risk flag of a category for the session's view of a
// project and returns the new value. The session is created on first use.
func (s *Service) ToggleRisk(sessionID, projectID, categoryID string) (bool, error) {
	if sessionID == "" || projectID == "" || categoryID == "" {
		return false, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(sessionID)
	flags, ok := sess.riskFlags[projectID]
	if !ok {
		flags = make(map[string]bool)
		sess.riskFlags[projectID] = flags
	}
	flags[categoryID] = !flags[categoryID]
	return flags[categoryID], nil
}

// RiskFlags returns a copy of the session's flags for a project. Unknown
// sessions and projects yield an empty map.
func (s *Service) RiskFlags(sessionID, projectID string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return map[string]bool{}
	}
	sess.LastActivity = s.now()
	out := maps.Clone(sess.riskFlags[projectID])
	if out == nil {
		out = map[string]bool{}
	}
	return out
}

// Forget drops any flags a session holds for a project, e.g. after deletion.
func (s *Service) Forget(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		delete(sess.riskFlags, projectID)
	}
}

// Close ends a session and discards its flags.
func (s *Service) Close(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Sweep closes sessions idle for longer than maxIdle and returns how many
// were removed.
func (s *Service) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("swept idle sessions", "removed", removed)
	}
	return removed
}

func (s *Service) touch(sessionID string) *Session {
	now := s.now()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &Session{
			ID:        sessionID,
			CreatedAt: now,
			riskFlags: make(map[string]map[string]bool),
		}
		s.sessions[sessionID] = sess
		s.logger.Debug("session started", "session_id", sessionID)
	}
	sess.LastActivity = now
	return sess
}
