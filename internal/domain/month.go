package domain

import "strings"

// monthNames maps month indices 0-11 to the names used by the rankings
// filter and the API surface.
var monthNames = [MonthsPerYear]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the name for a month index 0-11.
func MonthName(index int) (string, error) {
	if index < 0 || index >= MonthsPerYear {
		return "", ErrInvalidMonth
	}
	return monthNames[index], nil
}

// MonthIndexOf resolves a month name (case-insensitive) to its 0-11 index.
func MonthIndexOf(name string) (int, error) {
	for i, n := range monthNames {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return 0, ErrInvalidMonth
}
