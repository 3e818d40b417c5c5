/*
money.go - Display formatting for monetary values

PURPOSE:
  Aggregation works on raw decimals; amounts become strings only when they
  enter a report row. Formatting groups the integer part with commas and
  keeps any fractional digits the value actually carries:

    300        -> "300"
    1234.5     -> "1,234.5"
    2500000    -> "2,500,000"

  The currency code (KES) lives in column headers, not in every cell.
*/
package insurance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyCode is the fixed currency all console amounts are denominated in.
const CurrencyCode = "KES"

// FormatAmount renders a decimal as a locale-grouped display string.
func FormatAmount(d decimal.Decimal) string {
	s := d.String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
