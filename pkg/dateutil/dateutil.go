package dateutil

import (
	"time"
)

// Age calculates the age in whole years at a given date.
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeInMonths calculates the age in whole months at a given date.
func AgeInMonths(birthDate, atDate time.Time) int {
	months := MonthDiff(birthDate, atDate)
	if atDate.Day() < birthDate.Day() {
		months--
	}
	return months
}

// MonthDiff returns the calendar-month difference between two dates,
// ignoring the day of month. Negative when to precedes from.
func MonthDiff(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// CeilMonthDiff returns the month difference rounded up to cover the full
// span: any partial month counts as one.
func CeilMonthDiff(from, to time.Time) int {
	months := MonthDiff(from, to)
	if to.Day() > from.Day() {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}

// AddMonths adds a number of calendar months to a date.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// AddYears adds a number of calendar years to a date.
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// StartOfMonth returns midnight UTC on the first day of the date's month.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
