// Package wages computes daily-wage attendance postings. It is pure: the
// caller gathers the day's delivery counts and persists the resulting
// postings, so the batch can be exercised without a scheduler or a database.
package wages

import (
	"fmt"
	"time"
)

type Attendance string

const (
	FullDay Attendance = "Full Day"
	HalfDay Attendance = "Half Day"
	Absent  Attendance = "Absent"
)

// StaffDay is one daily-wage staff member's delivery tally for a ledger day,
// together with the attendance thresholds of their business.
type StaffDay struct {
	UserID          int
	Username        string
	DailyWage       float64
	FullDayJarCount int
	HalfDayJarCount int
	JarsDelivered   int
}

// Posting is a wage expense to be applied against a staff member's cash
// balance. WageDate keys the per-day idempotency guard.
type Posting struct {
	UserID      int
	Amount      float64
	Description string
	Attendance  Attendance
	WageDate    string // YYYY-MM-DD
}

// Classify maps a day's delivered-jar count onto an attendance tier.
func Classify(jarsSold, halfDayMin, fullDayMin int) Attendance {
	switch {
	case jarsSold >= fullDayMin:
		return FullDay
	case jarsSold >= halfDayMin:
		return HalfDay
	default:
		return Absent
	}
}

// WageFor returns the wage owed for an attendance tier: the full daily wage,
// half of it, or nothing.
func WageFor(att Attendance, dailyWage float64) float64 {
	switch att {
	case FullDay:
		return dailyWage
	case HalfDay:
		return dailyWage / 2
	default:
		return 0
	}
}

// ComputePostings turns a day's staff tallies into wage postings. Staff who
// end up with a zero wage (absent, or no wage configured) produce no posting.
func ComputePostings(day time.Time, staff []StaffDay) []Posting {
	wageDate := day.Format("2006-01-02")
	var postings []Posting
	for _, s := range staff {
		if s.DailyWage <= 0 {
			continue
		}
		att := Classify(s.JarsDelivered, s.HalfDayJarCount, s.FullDayJarCount)
		amount := WageFor(att, s.DailyWage)
		if amount <= 0 {
			continue
		}
		postings = append(postings, Posting{
			UserID:      s.UserID,
			Amount:      amount,
			Description: fmt.Sprintf("Daily Wage (%s)", att),
			Attendance:  att,
			WageDate:    wageDate,
		})
	}
	return postings
}
