// Package health reports liveness and cache readiness.
package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the readiness payload.
type Status struct {
	OK    bool   `json:"ok"`
	Cache string `json:"cache"`
	Error string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	db      Pinger
	backend string
}

// NewService constructs a health service. db may be nil when the cache is in memory.
func NewService(db Pinger, backend string) *Service {
	if backend == "" {
		backend = "memory"
	}
	return &Service{db: db, backend: backend}
}

// Live returns the liveness payload.
func (s *Service) Live() map[string]bool {
	return map[string]bool{"ok": true}
}

// Ready pings the cache database, if any.
func (s *Service) Ready(ctx context.Context) Status {
	st := Status{OK: true, Cache: s.backend}
	if s.db == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.OK = false
		st.Error = err.Error()
	}
	return st
}
