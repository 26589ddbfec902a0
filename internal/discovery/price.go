package discovery

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	PriceBucketFree   = "Free"
	PriceBucketLow    = "Low"
	PriceBucketMedium = "Medium"
	PriceBucketHigh   = "High"
)

// Upper bounds (inclusive) of the Low and Medium price buckets.
const (
	LowPriceCeiling    = 5000
	MediumPriceCeiling = 20000
)

// ParsePrice extracts the first amount from a display price such as "₦5,000"
// or "NGN 12,500.00". The sentinel "Free" parses as zero.
func ParsePrice(price string) (float64, bool) {
	price = strings.TrimSpace(price)
	if price == "" || strings.EqualFold(price, PriceFree) {
		return 0, true
	}

	var b strings.Builder
	started := false
scan:
	for _, r := range price {
		switch {
		case unicode.IsDigit(r):
			started = true
			b.WriteRune(r)
		case started && r == ',':
		case started && r == '.':
			b.WriteRune(r)
		case started:
			break scan
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PriceBucket maps a display price to its bucket label, or "" when the price
// cannot be read.
func PriceBucket(price string) string {
	v, ok := ParsePrice(price)
	if !ok {
		return ""
	}
	switch {
	case v == 0:
		return PriceBucketFree
	case v <= LowPriceCeiling:
		return PriceBucketLow
	case v <= MediumPriceCeiling:
		return PriceBucketMedium
	default:
		return PriceBucketHigh
	}
}

// priceRank orders buckets cheapest first; unreadable prices rank last.
func priceRank(price string) int {
	switch PriceBucket(price) {
	case PriceBucketFree:
		return 0
	case PriceBucketLow:
		return 1
	case PriceBucketMedium:
		return 2
	case PriceBucketHigh:
		return 3
	default:
		return 4
	}
}
