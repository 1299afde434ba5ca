package session

import "time"

// Session is one client's review session. Its risk flags are never persisted.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	// riskFlags maps project ID → category ID → flagged.
	riskFlags map[string]map[string]bool
}
