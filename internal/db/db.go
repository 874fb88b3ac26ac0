// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// Startup sequencer states.
type State string

const (
	StateConnecting     State = "CONNECTING"
	StateAuthenticating State = "AUTHENTICATING"
	StateSyncing        State = "SYNCING"
	StateReady          State = "READY"
	StateFailed         State = "FAILED"
)

const (
	maxAttempts = 10
	baseDelay   = 5 * time.Second
	maxDelay    = 30 * time.Second
)

// Sequencer drives the startup sequence: open a connection,
// authenticate with a ping, sync the schema. Authentication failures
// are retried with linearly increasing backoff; exhausting the
// attempts is fatal to the caller.
type Sequencer struct {
	Open  func() (*sql.DB, error)
	Ping  func(*sql.DB) error
	Sync  func(*sql.DB) error
	Sleep func(time.Duration)

	MaxAttempts int

	state    State
	attempts int
}

// NewSequencer builds a sequencer for the given lib/pq DSN with
// production defaults.
func NewSequencer(dsn string) *Sequencer {
	return &Sequencer{
		Open:        func() (*sql.DB, error) { return sql.Open("postgres", dsn) },
		Ping:        (*sql.DB).Ping,
		Sync:        Sync,
		Sleep:       time.Sleep,
		MaxAttempts: maxAttempts,
	}
}

// State returns the last state the sequencer reached.
func (s *Sequencer) State() State { return s.state }

// Attempts returns how many connection attempts were made.
func (s *Sequencer) Attempts() int { return s.attempts }

// RetryDelay computes the backoff before the next attempt:
// min(5s × attempt, 30s).
func RetryDelay(attempt int) time.Duration {
	d := time.Duration(attempt) * baseDelay
	if d > maxDelay {
		d = maxDelay
	}
	return d
}

// Run executes the sequence and returns a ready-to-use handle. On
// return the state is READY, or FAILED with a non-nil error.
func (s *Sequencer) Run() (*sql.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		s.attempts = attempt

		s.state = StateConnecting
		conn, err := s.Open()
		if err == nil {
			s.state = StateAuthenticating
			err = s.Ping(conn)
			if err == nil {
				s.state = StateSyncing
				if err := s.Sync(conn); err != nil {
					conn.Close()
					s.state = StateFailed
					return nil, fmt.Errorf("schema sync failed: %w", err)
				}
				s.state = StateReady
				return conn, nil
			}
			conn.Close()
		}
		lastErr = err

		if attempt == s.MaxAttempts {
			break
		}
		delay := RetryDelay(attempt)
		log.Printf("⚠️ database not ready (attempt %d/%d): %v, retrying in %s", attempt, s.MaxAttempts, err, delay)
		s.Sleep(delay)
	}

	s.state = StateFailed
	return nil, fmt.Errorf("could not authenticate to database after %d attempts: %w", s.MaxAttempts, lastErr)
}
