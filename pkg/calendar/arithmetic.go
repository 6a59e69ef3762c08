package calendar

import "time"

// Date is the contract the arithmetic functions need from a date type:
// a civil date, a derivable weekday, and day-offset addition producing a
// value of the same type. time.Time satisfies Date[time.Time] as-is, and
// caller-owned date types only need these three methods to work with every
// function in this package.
type Date[D any] interface {
	Date() (year int, month time.Month, day int)
	Weekday() time.Weekday
	AddDate(years, months, days int) D
}

func keyOf[D Date[D]](d D) ymd {
	y, m, day := d.Date()
	return ymd{y, m, day}
}

// IsBusinessDay reports whether d is a business day on c: its weekday is
// a working day or the date is an extra working date, and the date is not
// a holiday.
func IsBusinessDay[D Date[D]](c *Calendar, d D) bool {
	k := keyOf(d)
	if _, ok := c.holidays[k]; ok {
		return false
	}
	if _, ok := c.workingDays[d.Weekday()]; ok {
		return true
	}
	_, ok := c.extraWorkingDates[k]
	return ok
}

// RollForward returns d unchanged if it is a business day, otherwise the
// nearest following business day.
//
// Does not return over a calendar with no business days; see
// Calendar.HasBusinessDays.
func RollForward[D Date[D]](c *Calendar, d D) D {
	for !IsBusinessDay(c, d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// RollBackward returns d unchanged if it is a business day, otherwise the
// nearest preceding business day.
func RollBackward[D Date[D]](c *Calendar, d D) D {
	for !IsBusinessDay(c, d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// NextBusinessDay returns the first business day strictly after d. Unlike
// RollForward it always moves at least one day, so the result never equals
// the input.
func NextBusinessDay[D Date[D]](c *Calendar, d D) D {
	for {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(c, d) {
			return d
		}
	}
}

// PreviousBusinessDay returns the first business day strictly before d.
func PreviousBusinessDay[D Date[D]](c *Calendar, d D) D {
	for {
		d = d.AddDate(0, 0, -1)
		if IsBusinessDay(c, d) {
			return d
		}
	}
}

// AddBusinessDays rolls d forward to a business day and then steps forward
// n business days. n = 0 returns the rolled anchor; negative n behaves as
// zero.
func AddBusinessDays[D Date[D]](c *Calendar, d D, n int) D {
	result := RollForward(c, d)
	for i := 0; i < n; i++ {
		result = NextBusinessDay(c, result)
	}
	return result
}

// SubtractBusinessDays rolls d backward to a business day and then steps
// backward n business days. n = 0 returns the rolled anchor; negative n
// behaves as zero.
//
// The anchor matches the direction of travel: counting starts from the
// nearest business day at or before d, so for a non-business d the n = 0
// results of AddBusinessDays and SubtractBusinessDays differ.
func SubtractBusinessDays[D Date[D]](c *Calendar, d D, n int) D {
	result := RollBackward(c, d)
	for i := 0; i < n; i++ {
		result = PreviousBusinessDay(c, result)
	}
	return result
}
