package calendar

import (
	"strings"
	"testing"
)

func TestRomanNumeral(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "N"},
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{28, "XXVIII"},
		{31, "XXXI"},
		{40, "XL"},
		{90, "XC"},
		{1999, "MCMXCIX"},
		{2024, "MMXXIV"},
	}

	for _, tc := range tests {
		if got := RomanNumeral(tc.n); got != tc.expected {
			t.Errorf("RomanNumeral(%d) = %q, expected %q", tc.n, got, tc.expected)
		}
	}
}

func TestNextWithinMonth(t *testing.T) {
	d := Date{Day: 5, Month: 2}
	next := d.Next()
	if next.Day != 6 || next.Month != 2 || next.Year != 0 {
		t.Errorf("Next() = %+v, expected day 6 of month 2", next)
	}
}

func TestNextRollsMonth(t *testing.T) {
	d := Date{Day: 27, Month: 1}
	next := d.Next()
	if next.Day != 0 || next.Month != 2 {
		t.Errorf("Next() after last day of Februarius = %+v, expected day 0 of month 2", next)
	}
}

func TestNextRollsYear(t *testing.T) {
	d := Date{Day: 30, Month: 11, Year: 3}
	next := d.Next()
	if next != (Date{Day: 0, Month: 0, Year: 4}) {
		t.Errorf("Next() on last day of year = %+v", next)
	}
}

func TestAdvanceFullYear(t *testing.T) {
	d := Date{}.Advance(365)
	if d != (Date{Year: 1}) {
		t.Errorf("Advance(365) = %+v, expected first day of year 1", d)
	}
}

func TestMonthLengthsSumToYear(t *testing.T) {
	total := 0
	for m := 0; m < MonthsPerYear; m++ {
		total += DaysInMonth(m)
	}
	if total != 365 {
		t.Errorf("year length = %d, expected 365", total)
	}
}

func TestSeasons(t *testing.T) {
	expected := []Season{
		Winter, Winter, Winter,
		Spring, Spring,
		Summer, Summer, Summer, Summer,
		Autumn, Autumn,
		Winter,
	}
	for m, want := range expected {
		if got := SeasonOf(m); got != want {
			t.Errorf("SeasonOf(%d) = %v, expected %v", m, got, want)
		}
	}
}

func TestMonthOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for month 12")
		}
	}()
	DaysInMonth(12)
}

func TestDateString(t *testing.T) {
	d := Date{Day: 13, Month: 2}
	if got := d.String(); got != "day XIV of Martius, winter" {
		t.Errorf("String() = %q", got)
	}
	if !strings.HasPrefix(d.Long(), "Year of L. Cornelius Lentulus CON I") {
		t.Errorf("Long() = %q", d.Long())
	}
}

func TestYearNameRotates(t *testing.T) {
	if YearName(0) == YearName(1) {
		t.Error("consecutive years should have different consuls")
	}
	if !strings.Contains(YearName(6), "CON II") {
		t.Errorf("YearName(6) = %q, expected second terms", YearName(6))
	}
}

func TestBefore(t *testing.T) {
	a := Date{Day: 3, Month: 4, Year: 1}
	b := a.Next()
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Before() ordering is wrong")
	}
}
