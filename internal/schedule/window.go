package schedule

import "time"

// All window boundaries are computed in UTC regardless of the
// location attached to the input instant.

// StartOfDay returns t's calendar day at 00:00:00.000 UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns t's calendar day at 23:59:59.999 UTC.
func EndOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999*int(time.Millisecond), time.UTC)
}

// StartOfWeek returns the Monday of t's week at 00:00:00.000 UTC.
// Sunday rolls back 6 days, any other weekday rolls back (weekday - 1).
func StartOfWeek(t time.Time) time.Time {
	u := t.UTC()
	back := int(u.Weekday()) - 1
	if u.Weekday() == time.Sunday {
		back = 6
	}
	return StartOfDay(u.AddDate(0, 0, -back))
}

// EndOfWeek returns the Sunday of t's week at 23:59:59.999 UTC.
func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

// FormatDate renders t as zero-padded YYYY-MM-DD using UTC fields.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Week is a Monday..Sunday UTC window with its formatted bounds.
type Week struct {
	Start     time.Time
	End       time.Time
	StartDate string
	EndDate   string
}

func WeekOf(t time.Time) Week {
	start := StartOfWeek(t)
	end := EndOfWeek(t)
	return Week{
		Start:     start,
		End:       end,
		StartDate: FormatDate(start),
		EndDate:   FormatDate(end),
	}
}

func CurrentWeek() Week {
	return WeekOf(time.Now())
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
