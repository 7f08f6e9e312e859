// Package calendar implements the simplified Roman calendar the colony
// simulation runs on: fixed month lengths, no leap years, one day per tick.
package calendar

import (
	"fmt"
	"strings"
)

// MonthsPerYear is the number of months in a calendar year.
const MonthsPerYear = 12

// Season is one of the four seasons derived from the month.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

// String returns the season name.
func (s Season) String() string {
	switch s {
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	default:
		return "unknown"
	}
}

var monthNames = [MonthsPerYear]string{
	"Ianuarius", "Februarius", "Martius",
	"Aprilis", "Maius", "Iunius",
	"Iulius", "Augustus", "September",
	"October", "November", "December",
}

var monthLengths = [MonthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a zero-based calendar date. Day 0 is the first day of the month
// and Month 0 is Ianuarius.
type Date struct {
	Day   int
	Month int
	Year  int
}

// mustMonth panics when the month index is outside 0..11.
func mustMonth(month int) {
	if month < 0 || month >= MonthsPerYear {
		panic(fmt.Sprintf("calendar: month %d out of range", month))
	}
}

// DaysInMonth returns the length of the given month.
func DaysInMonth(month int) int {
	mustMonth(month)
	return monthLengths[month]
}

// MonthName returns the Latin month name.
func MonthName(month int) string {
	mustMonth(month)
	return monthNames[month]
}

// SeasonOf maps a month index to its season.
func SeasonOf(month int) Season {
	mustMonth(month)
	switch {
	case month <= 2 || month == 11:
		return Winter
	case month <= 4:
		return Spring
	case month <= 8:
		return Summer
	default:
		return Autumn
	}
}

// Next returns the date one day later.
func (d Date) Next() Date {
	if d.Day+1 >= DaysInMonth(d.Month) {
		d.Month++
		d.Day = 0
	} else {
		d.Day++
	}
	if d.Month == MonthsPerYear {
		d.Year++
		d.Month = 0
	}
	return d
}

// Advance returns the date n days later.
func (d Date) Advance(n int) Date {
	for i := 0; i < n; i++ {
		d = d.Next()
	}
	return d
}

// Season returns the season of the date.
func (d Date) Season() Season {
	return SeasonOf(d.Month)
}

// MonthName returns the Latin name of the date's month.
func (d Date) MonthName() string {
	return MonthName(d.Month)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String formats the date as "day XIV of Martius, spring".
func (d Date) String() string {
	return fmt.Sprintf("day %s of %s, %s", RomanNumeral(d.Day+1), d.MonthName(), d.Season())
}

// Short formats the date as "XIV Martius".
func (d Date) Short() string {
	return RomanNumeral(d.Day+1) + " " + d.MonthName()
}

var numerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// RomanNumeral formats n in subtractive Roman notation. Values below one
// have no numeral and return "N" (nulla).
func RomanNumeral(n int) string {
	if n < 1 {
		return "N"
	}
	var b strings.Builder
	for _, nu := range numerals {
		for n >= nu.value {
			b.WriteString(nu.symbol)
			n -= nu.value
		}
	}
	return b.String()
}
