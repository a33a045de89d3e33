package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// TokenPurger defines the interface for removing stale refresh tokens
type TokenPurger interface {
	DeleteExpiredTokens(ctx context.Context) error
	CleanupRevokedTokens(ctx context.Context, retention time.Duration) error
}

// TokenSweeper periodically removes expired refresh tokens and revoked
// tokens older than the retention window.
type TokenSweeper struct {
	purger    TokenPurger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewTokenSweeper creates a new token sweeper job
func NewTokenSweeper(purger TokenPurger, interval, retention time.Duration) *TokenSweeper {
	if interval == 0 {
		interval = time.Hour // Default sweep every hour
	}
	if retention == 0 {
		retention = 30 * 24 * time.Hour // Keep revoked tokens 30 days for reuse detection
	}
	return &TokenSweeper{
		purger:    purger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the token sweeper job
func (s *TokenSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	log.Println("Token sweeper started")
}

// Stop gracefully stops the job
func (s *TokenSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	log.Println("Token sweeper stopped")
}

// run sweeps on startup and then on every tick
func (s *TokenSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep runs one cleanup pass
func (s *TokenSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.purger.DeleteExpiredTokens(ctx); err != nil {
		log.Printf("Error deleting expired tokens: %v", err)
	}
	if err := s.purger.CleanupRevokedTokens(ctx, s.retention); err != nil {
		log.Printf("Error cleaning up revoked tokens: %v", err)
	}
}

// RunOnce runs a single sweep pass (for manual trigger or testing)
func (s *TokenSweeper) RunOnce(ctx context.Context) error {
	if err := s.purger.DeleteExpiredTokens(ctx); err != nil {
		return err
	}
	return s.purger.CleanupRevokedTokens(ctx, s.retention)
}
