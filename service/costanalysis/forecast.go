package costanalysis

import "time"

// RunRateForecast extrapolates month-to-date spend to the full month using the
// average daily burn. Zero elapsed days yield a zero forecast. Negative actuals
// (credits) are passed through.
func RunRateForecast(actual float64, daysElapsed, daysInMonth int) float64 {
	if daysElapsed == 0 {
		return 0
	}
	runRate := actual / float64(daysElapsed)
	return runRate * float64(daysInMonth)
}

// DaysInMonth returns the number of days in t's month
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// FirstDayOfMonth returns midnight UTC on the first day of t's month
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the last second of t's month in UTC
func LastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 23, 59, 59, 0, time.UTC)
}

// PeriodKey formats t as a monthly period key
func PeriodKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 06"
)

// PeriodLabel turns "2025-01" into "Jan 25"; unparseable keys are returned as is
func PeriodLabel(key string) string {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format(monthLabelLayout)
}
