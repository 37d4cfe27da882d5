// utils/format.go
package utils

import (
	"fmt"
	"strings"
)

// FormatPhone renders a bare 10-digit number as (XXX) XXX-XXXX and an
// 11-digit number with a leading 1 the same way. Anything else is returned
// unchanged.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}

// FormatCurrency renders an amount as $1,234.56. Negative amounts keep the
// sign in front of the dollar symbol.
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole := s[:len(s)-3]
	cents := s[len(s)-2:]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	return sign + "$" + grouped.String() + "." + cents
}
