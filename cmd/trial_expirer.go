package main

import (
	"context"
	"time"
)

const trialExpirerTimeout = 1 * time.Minute

// startTrialExpirer flips lapsed trial businesses to expired once a day.
func startTrialExpirer(ctx context.Context, app *application) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, trialExpirerTimeout)
			expired, err := app.businessRepo.ExpireLapsedTrials(runCtx, time.Now())
			cancel()
			if err != nil {
				app.errorLog.Printf("trial expirer: %v", err)
			} else if expired > 0 {
				app.infoLog.Printf("trial expirer: expired %d businesses", expired)
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
