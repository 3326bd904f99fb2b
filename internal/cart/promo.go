package cart

import "strings"

// promoCodes maps a code to its discount percentage.
var promoCodes = map[string]float64{
	"BOAT10": 10,
}

// Discount returns the discount percentage for code. Codes are case-insensitive.
func Discount(code string) (float64, error) {
	pct, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, ErrInvalidPromoCode
	}
	return pct, nil
}
