package project

// LockCount reports how many per-project locks are held or awaited.
func (s *Service) LockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}
