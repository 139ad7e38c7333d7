package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats an amount as "$1,234.56". Rounding happens on the decimal;
// only the whole-dollar part goes through the printer for grouping.
func Money(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "$" + printer.Sprintf("%d", decimal.RequireFromString(whole).IntPart()) + "." + cents
}

// Percent formats an already multiplied percentage, e.g. 7.14 -> "7.14%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

func Qty(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}
