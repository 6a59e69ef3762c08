// Package calendar provides business day calculations over an immutable
// calendar of working weekdays, holidays and extra working dates.
//
// A Calendar is built once, from explicit lists or from a loaded config,
// and is read-only afterwards. All queries are pure, so a single Calendar
// may be shared between goroutines without locking.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ymd identifies a calendar date independent of time of day and location.
type ymd struct {
	year  int
	month time.Month
	day   int
}

func ymdOf(t time.Time) ymd {
	y, m, d := t.Date()
	return ymd{y, m, d}
}

func (k ymd) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.year, k.month, k.day)
}

// Calendar holds the working-day configuration. The zero value is not
// usable; build one with New, Workweek or WithHolidays.
//
// A calendar whose working-day set and extra-working-date set are both
// empty has no business days at all, and every rolling or stepping
// operation over it loops forever. Callers owning such configs must check
// HasBusinessDays before rolling.
type Calendar struct {
	workingDays       map[time.Weekday]struct{}
	holidays          map[ymd]struct{}
	extraWorkingDates map[ymd]struct{}
}

// ValidationError is returned by New when the same date is listed both as
// a holiday and as an extra working date.
type ValidationError struct {
	// Conflicts holds the overlapping dates, sorted ascending.
	Conflicts []time.Time
}

func (e *ValidationError) Error() string {
	dates := make([]string, len(e.Conflicts))
	for i, d := range e.Conflicts {
		dates[i] = ymdOf(d).String()
	}
	return fmt.Sprintf("overlapping holiday/extra-working-date: %s", strings.Join(dates, ", "))
}

// New creates a Calendar from the given working weekdays, holidays and
// extra working dates. Inputs are deduplicated; duplicate entries and an
// empty working-day list are accepted silently. New fails only when a date
// appears both as a holiday and as an extra working date.
func New(workingDays []time.Weekday, holidays, extraWorkingDates []time.Time) (*Calendar, error) {
	c := &Calendar{
		workingDays:       make(map[time.Weekday]struct{}, len(workingDays)),
		holidays:          make(map[ymd]struct{}, len(holidays)),
		extraWorkingDates: make(map[ymd]struct{}, len(extraWorkingDates)),
	}

	for _, wd := range workingDays {
		c.workingDays[wd] = struct{}{}
	}
	for _, d := range holidays {
		c.holidays[ymdOf(d)] = struct{}{}
	}
	for _, d := range extraWorkingDates {
		c.extraWorkingDates[ymdOf(d)] = struct{}{}
	}

	var conflicts []time.Time
	for k := range c.holidays {
		if _, ok := c.extraWorkingDates[k]; ok {
			conflicts = append(conflicts, time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC))
		}
	}
	if len(conflicts) > 0 {
		sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Before(conflicts[j]) })
		return nil, &ValidationError{Conflicts: conflicts}
	}

	return c, nil
}

// Workweek creates a Calendar with Monday-Friday as working days and no
// holidays.
func Workweek() *Calendar {
	c, _ := New(workweek(), nil, nil)
	return c
}

// WithHolidays creates a Calendar with Monday-Friday as working days and
// the given holidays.
func WithHolidays(holidays []time.Time) *Calendar {
	c, _ := New(workweek(), holidays, nil)
	return c
}

func workweek() []time.Weekday {
	return []time.Weekday{
		time.Monday,
		time.Tuesday,
		time.Wednesday,
		time.Thursday,
		time.Friday,
	}
}

// HasBusinessDays reports whether any date can ever be a business day.
// False means every rolling or stepping operation would loop forever.
func (c *Calendar) HasBusinessDays() bool {
	if len(c.workingDays) > 0 {
		return true
	}
	for k := range c.extraWorkingDates {
		if _, ok := c.holidays[k]; !ok {
			return true
		}
	}
	return false
}

// WorkingDays returns the configured working weekdays, sorted Sunday
// first as time.Weekday orders them.
func (c *Calendar) WorkingDays() []time.Weekday {
	days := make([]time.Weekday, 0, len(c.workingDays))
	for wd := range c.workingDays {
		days = append(days, wd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Holidays returns the configured holidays, sorted ascending, at midnight
// UTC.
func (c *Calendar) Holidays() []time.Time {
	return sortedDates(c.holidays)
}

// ExtraWorkingDates returns the configured extra working dates, sorted
// ascending, at midnight UTC.
func (c *Calendar) ExtraWorkingDates() []time.Time {
	return sortedDates(c.extraWorkingDates)
}

func sortedDates(set map[ymd]struct{}) []time.Time {
	dates := make([]time.Time, 0, len(set))
	for k := range set {
		dates = append(dates, time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// IsBusinessDay reports whether the given date is a business day: its
// weekday is a working day or the date is an extra working date, and the
// date is not a holiday. Holidays always exclude.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	return IsBusinessDay(c, t)
}

// RollForward returns the date itself if it is a business day, otherwise
// the nearest following business day.
func (c *Calendar) RollForward(t time.Time) time.Time {
	return RollForward(c, t)
}

// RollBackward returns the date itself if it is a business day, otherwise
// the nearest preceding business day.
func (c *Calendar) RollBackward(t time.Time) time.Time {
	return RollBackward(c, t)
}

// NextBusinessDay returns the first business day strictly after the given
// date, even when the date is itself a business day.
func (c *Calendar) NextBusinessDay(t time.Time) time.Time {
	return NextBusinessDay(c, t)
}

// PreviousBusinessDay returns the first business day strictly before the
// given date, even when the date is itself a business day.
func (c *Calendar) PreviousBusinessDay(t time.Time) time.Time {
	return PreviousBusinessDay(c, t)
}

// AddBusinessDays rolls the date forward to a business day and then steps
// forward n business days. n <= 0 returns the rolled date.
func (c *Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	return AddBusinessDays(c, t, n)
}

// SubtractBusinessDays rolls the date backward to a business day and then
// steps backward n business days. n <= 0 returns the rolled date.
//
// Both offset operations anchor toward their own direction of travel, so
// for a non-business start date AddBusinessDays(t, 0) and
// SubtractBusinessDays(t, 0) return different days.
func (c *Calendar) SubtractBusinessDays(t time.Time, n int) time.Time {
	return SubtractBusinessDays(c, t, n)
}
