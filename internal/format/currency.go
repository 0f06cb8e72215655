package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Currency renders an optional amount as "R$ 1.234,56"; nil renders as "-".
func Currency(v *float64) string {
	if v == nil {
		return "-"
	}
	return Money(*v)
}

// Money renders an amount as "R$ 1.234,56".
func Money(v float64) string {
	return "R$ " + brl.Sprintf("%.2f", v)
}
