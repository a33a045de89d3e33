// Package jobs implements background job processing for the Hireline API.
//
// The jobs package contains scheduled tasks that run independently of
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - TokenSweeper: Periodic removal of expired and stale revoked refresh tokens
//
// # Lifecycle
//
// Jobs expose Start and Stop and manage their own goroutine:
//
//	sweeper := jobs.NewTokenSweeper(tokenService, cfg.Token.SweepInterval, cfg.Token.RevokedRetention)
//	sweeper.Start()
//	defer sweeper.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application. A failed sweep is
// retried on the next tick.
package jobs
