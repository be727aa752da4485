package util

import "time"

const periodLayout = "2006-01"

// CurrentPeriod returns the current billing period in "YYYY-MM" form.
func CurrentPeriod() string {
	return time.Now().UTC().Format(periodLayout)
}

// PreviousPeriod returns the billing period one month before the given one,
// or an empty string when the input is not a valid "YYYY-MM" period.
func PreviousPeriod(period string) string {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return ""
	}
	return t.AddDate(0, -1, 0).Format(periodLayout)
}

// ValidPeriod reports whether the given string is a well-formed "YYYY-MM" period.
func ValidPeriod(period string) bool {
	_, err := time.Parse(periodLayout, period)
	return err == nil
}
