package calendar

import "fmt"

// Romans named their years after the two consuls in office.
var consuls = []string{
	"L. Cornelius Lentulus", "M. Porcius Cato",
	"P. Sulpicius Galba Maximus", "C. Aurelius Cotta",
	"P. Villius Tappulus", "T. Quinctius Flamininus",
	"Sex. Aelius Paetus Catus", "C. Cornelius Cethegus",
	"Q. Minucius Rufus", "L. Furius Purpureo",
	"M. Claudius Marcellus", "L. Valerius Flaccus",
}

// YearName returns the consular name of a year. Consul pairs rotate
// through a fixed list; the CON numeral counts terms served.
func YearName(year int) string {
	if year < 0 {
		year = 0
	}
	pairs := len(consuls) / 2
	pair := year % pairs
	term := year/pairs + 1
	return fmt.Sprintf("Year of %s CON %s & %s CON %s",
		consuls[2*pair], RomanNumeral(term),
		consuls[2*pair+1], RomanNumeral(term))
}

// Long formats the full dashboard date line.
func (d Date) Long() string {
	return YearName(d.Year) + ", " + d.String()
}
