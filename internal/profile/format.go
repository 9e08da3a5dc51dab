package profile

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout  = "Jan 2, 2006"
	unknownDate = "Unknown"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders "{currency} {amount}" with thousands separators and
// two decimal places, e.g. "KES 1,234.50".
func FormatMoney(currency string, amount decimal.Decimal) string {
	return currency + " " + groupDigits(amount.Round(2))
}

func groupDigits(d decimal.Decimal) string {
	whole := d.Truncate(0)
	frac := d.Sub(whole).Abs().StringFixed(2)[1:]
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + moneyPrinter.Sprintf("%d", whole.Abs().IntPart()) + frac
}

// FormatDate renders t as "Jan 2, 2006", or "Unknown" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.Format(dateLayout)
}

// FormatDateString parses an RFC 3339 (or plain YYYY-MM-DD) timestamp and
// formats it like FormatDate, falling back to "Unknown".
func FormatDateString(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDate(t)
		}
	}
	return unknownDate
}
