package model

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatElapsed renders d in seconds with thousands grouping and at most
// three fraction digits, e.g. 0.012, 1.5, 2 or 1,234.5.
func FormatElapsed(d time.Duration) string {
	p := message.NewPrinter(language.English)

	return p.Sprint(number.Decimal(d.Seconds(), number.MaxFractionDigits(3)))
}
