package currency

import (
	"math"
	"strconv"
	"strings"
)

// FormatUSD renders whole-dollar prices as "$1,350". Catalog prices carry no
// currency; the site displays them in US dollars.
func FormatUSD(amount float64) string {
	dollars := int64(math.Round(math.Abs(amount)))

	var b strings.Builder
	if amount < 0 && dollars != 0 {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(group(strconv.FormatInt(dollars, 10)))
	return b.String()
}

// FormatRange renders a price filter label such as "$150 - $890".
func FormatRange(lo, hi float64) string {
	return FormatUSD(lo) + " - " + FormatUSD(hi)
}

// group inserts a comma every three digits from the right.
func group(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
