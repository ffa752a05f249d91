package main

import (
	"context"
	"log"
	"time"

	"lenslink/internal/repositories"
)

const sessionCleanerTimeout = 1 * time.Minute

// startSessionCleaner removes expired refresh sessions once a day.
func startSessionCleaner(ctx context.Context, repo *repositories.UserRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, sessionCleanerTimeout)
			removed, err := repo.DeleteExpiredSessions(runCtx, time.Now())
			cancel()
			if err != nil {
				errorLog.Printf("session cleaner: failed to delete expired sessions: %v", err)
			} else if removed > 0 {
				infoLog.Printf("session cleaner: removed %d expired sessions", removed)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
