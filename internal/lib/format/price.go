package format

import (
	"fmt"
	"strconv"

	"github.com/lavandel/flower_storefront/internal/domain/models"
)

// Price renders a tiyn amount in the request locale. The currency is
// fixed (tenge); only separators and symbol placement vary.
//
//	ru/kk: "2 500,50 ₸"
//	en:    "₸2,500.50"
func Price(tiyn int64, locale models.Locale) string {
	whole := tiyn / 100
	fraction := tiyn % 100
	if fraction < 0 {
		fraction = -fraction
	}

	switch locale {
	case models.LocaleEN:
		if fraction == 0 {
			return fmt.Sprintf("₸%s", group(whole, ","))
		}
		return fmt.Sprintf("₸%s.%02d", group(whole, ","), fraction)
	default:
		if fraction == 0 {
			return fmt.Sprintf("%s ₸", group(whole, " "))
		}
		return fmt.Sprintf("%s,%02d ₸", group(whole, " "), fraction)
	}
}

func group(value int64, separator string) string {
	digits := strconv.FormatInt(value, 10)

	var sign string
	if digits[0] == '-' {
		sign = "-"
		digits = digits[1:]
	}

	if len(digits) <= 3 {
		return sign + digits
	}

	var grouped string
	for len(digits) > 3 {
		grouped = separator + digits[len(digits)-3:] + grouped
		digits = digits[:len(digits)-3]
	}

	return sign + digits + grouped
}
