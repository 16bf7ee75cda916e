package pricing

import (
	"errors"
	"math"
)

// First guest is included in the nightly rate; each additional guest
// adds 25% of the rate. Rooms take at most three guests.
const (
	MinGuests      = 1
	MaxGuests      = 3
	ExtraGuestRate = 0.25
)

var ErrGuestCount = errors.New("guest count out of range")

// NightlyRate returns the discounted rate when a discount is set and
// strictly below the regular price, otherwise the regular price.
func NightlyRate(price float64, discount *float64) float64 {
	if discount != nil && *discount < price {
		return *discount
	}
	return price
}

// Total computes the stay price for one night. Stored totals are rounded
// to cents; whole-unit rounding is a display concern and never applied here.
func Total(price float64, discount *float64, guests int) (float64, error) {
	if guests < MinGuests || guests > MaxGuests {
		return 0, ErrGuestCount
	}

	base := NightlyRate(price, discount)
	extra := float64(guests - 1)
	total := base + base*ExtraGuestRate*extra
	return math.Round(total*100) / 100, nil
}
