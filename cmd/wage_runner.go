package main

import (
	"context"
	"time"
)

const wageRunTimeout = 5 * time.Minute

// startWageRunner fires the daily wage accrual at the configured local hour.
// The run itself is idempotent, so an extra trigger after a restart is safe.
func startWageRunner(ctx context.Context, app *application) {
	go func() {
		for {
			now := time.Now().In(app.location)
			next := time.Date(now.Year(), now.Month(), now.Day(), app.cfg.Wages.RunHour, 0, 0, 0, app.location)
			if !next.After(now) {
				next = next.AddDate(0, 0, 1)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(next.Sub(now)):
			}

			runCtx, cancel := context.WithTimeout(ctx, wageRunTimeout)
			if err := app.wageService.Run(runCtx, time.Now()); err != nil {
				app.errorLog.Printf("wage runner: %v", err)
			}
			cancel()
		}
	}()
}
