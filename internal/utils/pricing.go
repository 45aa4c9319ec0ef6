package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	// HourlyOverdueRate is the flat charge for each leftover hour that does not
	// make up a full day. It does not depend on the unit's daily rate.
	HourlyOverdueRate int64 = 15000

	// PartialDayThresholdHours is the largest leftover that is still billed per hour.
	PartialDayThresholdHours int64 = 6

	hoursPerDay int64 = 24

	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// RentalPeriod is the input of the duration biller
type RentalPeriod struct {
	Start     time.Time
	End       time.Time
	DailyRate int64
}

// CostBreakdown is the result of a rental or penalty calculation
type CostBreakdown struct {
	FullDays   int64 `json:"full_days"`
	ExtraHours int64 `json:"extra_hours"`
	Amount     int64 `json:"amount"`
}

// ParseInstant combines a yyyy-mm-dd date and a HH:MM (or HH:MM:SS) clock into one instant
func ParseInstant(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", date)
	}
	return CombineDateTime(d, clock, loc)
}

// CombineDateTime places the time-of-day clock on the calendar day of date
func CombineDateTime(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock = strings.TrimSpace(clock)

	layout := ClockLayout
	if strings.Count(clock, ":") == 2 {
		layout = "15:04:05"
	}
	c, err := time.Parse(layout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, loc), nil
}

// ElapsedHours returns the number of started hours between from and to.
// A reversed interval yields zero or a negative count.
func ElapsedHours(from, to time.Time) int64 {
	d := to.Sub(from)
	hours := int64(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}

// SplitHours decomposes elapsed hours into whole days and billable leftover hours.
// A leftover above PartialDayThresholdHours is billed as one more day.
func SplitHours(elapsedHours int64) (fullDays, extraHours int64) {
	if elapsedHours <= 0 {
		return 0, 0
	}
	fullDays = elapsedHours / hoursPerDay
	extraHours = elapsedHours % hoursPerDay
	if extraHours > PartialDayThresholdHours {
		fullDays++
		extraHours = 0
	}
	return fullDays, extraHours
}

func breakdown(elapsedHours, dailyRate int64) CostBreakdown {
	days, hours := SplitHours(elapsedHours)
	return CostBreakdown{
		FullDays:   days,
		ExtraHours: hours,
		Amount:     days*dailyRate + hours*HourlyOverdueRate,
	}
}

// CalculateRentalCost bills a rental period. Every rental is billed at least
// one hour, including a reversed period; callers reject those before billing.
func CalculateRentalCost(period RentalPeriod) CostBreakdown {
	elapsed := ElapsedHours(period.Start, period.End)
	if elapsed < 1 {
		elapsed = 1
	}
	return breakdown(elapsed, period.DailyRate)
}

// CalculatePenalty returns the late-return fee for a rental due at due, assessed at now.
// Nothing is owed until now is strictly after due.
func CalculatePenalty(due, now time.Time, dailyRate int64) CostBreakdown {
	if !now.After(due) {
		return CostBreakdown{}
	}
	return breakdown(ElapsedHours(due, now), dailyRate)
}
