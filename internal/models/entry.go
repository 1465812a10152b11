package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one recorded interval of work. Completed entries carry an end
// time; the single in-progress session is synthesized with IsActive set and
// no end time. An entry whose end precedes its start is a manual subtractive
// adjustment and has a negative duration on purpose.
type TimeEntry struct {
	ID        string     `json:"id"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	IsActive  bool       `json:"isActive"`
}

func NewEntry(start, end time.Time) TimeEntry {
	return TimeEntry{
		ID:        uuid.New().String(),
		StartDate: start,
		EndDate:   &end,
	}
}

// Duration returns the signed length of the entry. Active entries are
// measured against now.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	if e.EndDate == nil {
		return now.Sub(e.StartDate)
	}
	return e.EndDate.Sub(e.StartDate)
}

type Period int

const (
	Today Period = iota
	ThisWeek
	LastWeek
	ThisMonth
	Total
)

func (p Period) String() string {
	switch p {
	case Today:
		return "today"
	case ThisWeek:
		return "this week"
	case LastWeek:
		return "last week"
	case ThisMonth:
		return "this month"
	case Total:
		return "total"
	}
	return "unknown"
}

// Settings are the user preferences read by aggregation and formatting.
// WeekStartDay is 1..7 with 1 = Sunday, matching time.Weekday + 1.
type Settings struct {
	HourlyRate      float64 `json:"hourly_rate"`
	WeekStartDay    int     `json:"week_start_day"`
	Use24HourFormat bool    `json:"use_24_hour_format"`
}

func DefaultSettings() Settings {
	return Settings{
		HourlyRate:      50,
		WeekStartDay:    2,
		Use24HourFormat: true,
	}
}
