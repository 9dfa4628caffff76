package wages

import (
	"testing"
	"time"
)

func TestClassifyTiers(t *testing.T) {
	cases := []struct {
		jars int
		want Attendance
	}{
		{0, Absent},
		{19, Absent},
		{20, HalfDay},
		{35, HalfDay},
		{49, HalfDay},
		{50, FullDay},
		{120, FullDay},
	}
	for _, c := range cases {
		if got := Classify(c.jars, 20, 50); got != c.want {
			t.Fatalf("Classify(%d) = %s, want %s", c.jars, got, c.want)
		}
	}
}

func TestWageFor(t *testing.T) {
	if got := WageFor(FullDay, 300); got != 300 {
		t.Fatalf("full day wage = %.2f, want 300", got)
	}
	if got := WageFor(HalfDay, 300); got != 150 {
		t.Fatalf("half day wage = %.2f, want 150", got)
	}
	if got := WageFor(Absent, 300); got != 0 {
		t.Fatalf("absent wage = %.2f, want 0", got)
	}
}

func TestComputePostings(t *testing.T) {
	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	staff := []StaffDay{
		{UserID: 1, DailyWage: 300, FullDayJarCount: 50, HalfDayJarCount: 20, JarsDelivered: 35},
		{UserID: 2, DailyWage: 300, FullDayJarCount: 50, HalfDayJarCount: 20, JarsDelivered: 60},
		{UserID: 3, DailyWage: 300, FullDayJarCount: 50, HalfDayJarCount: 20, JarsDelivered: 5},
		{UserID: 4, DailyWage: 0, FullDayJarCount: 50, HalfDayJarCount: 20, JarsDelivered: 80},
	}

	postings := ComputePostings(day, staff)
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	if postings[0].UserID != 1 || postings[0].Amount != 150 {
		t.Fatalf("expected half-day posting of 150 for user 1, got %+v", postings[0])
	}
	if postings[0].Description != "Daily Wage (Half Day)" {
		t.Fatalf("unexpected posting description %q", postings[0].Description)
	}
	if postings[1].UserID != 2 || postings[1].Amount != 300 {
		t.Fatalf("expected full-day posting of 300 for user 2, got %+v", postings[1])
	}
	for _, p := range postings {
		if p.WageDate != "2025-08-14" {
			t.Fatalf("unexpected wage date %q", p.WageDate)
		}
	}
}
