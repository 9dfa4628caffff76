package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"aquaBack/internal/repositories"
	"aquaBack/internal/wages"
)

// wageLockTTL bounds how long a crashed run can hold the daily lock.
const wageLockTTL = 2 * time.Hour

type WageService struct {
	Wages    *repositories.WageRepository
	Redis    *redis.Client
	Location *time.Location
	InfoLog  *log.Logger
	ErrorLog *log.Logger
}

// Run executes the wage accrual for the calendar day containing now, in the
// service's location. A Redis SETNX lock keeps concurrent instances from
// racing; the unique wage-date index makes even a lost lock harmless.
func (s *WageService) Run(ctx context.Context, now time.Time) error {
	local := now.In(s.Location)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)

	lockKey := "wage_run:" + day.Format("2006-01-02")
	ok, err := s.Redis.SetNX(ctx, lockKey, "1", wageLockTTL).Result()
	if err != nil {
		s.ErrorLog.Printf("wage run lock: %v", err)
	} else if !ok {
		s.InfoLog.Printf("wage run for %s already in progress, skipping", day.Format("2006-01-02"))
		return nil
	}

	from := day
	to := day.AddDate(0, 0, 1).Add(-time.Second)

	staff, err := s.Wages.EligibleStaffBetween(ctx, from.UTC(), to.UTC())
	if err != nil {
		return err
	}
	postings := wages.ComputePostings(day, staff)
	if len(postings) == 0 {
		s.InfoLog.Printf("wage run for %s: no postings", day.Format("2006-01-02"))
		return nil
	}

	applied, skipped, err := s.Wages.ApplyPostings(ctx, postings)
	if err != nil {
		return err
	}
	s.InfoLog.Printf("wage run for %s: %d applied, %d already posted", day.Format("2006-01-02"), applied, skipped)
	return nil
}
