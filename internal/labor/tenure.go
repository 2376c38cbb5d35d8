package labor

import "time"

// TenureMonths is the calendar month difference between from and to,
// ignoring the day of month.
func TenureMonths(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// DaysBetween counts whole calendar days from from to to.
func DaysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

// VacationEligible reports whether a full year (365 days) has passed since admission.
func VacationEligible(admission, today time.Time) bool {
	return !dateOf(admission).AddDate(0, 0, 365).After(dateOf(today))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
