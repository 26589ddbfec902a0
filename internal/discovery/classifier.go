package discovery

import "strings"

const (
	BucketAll      = "All"
	BucketEvents   = "Events"
	BucketEatDrink = "Eat & drink"
	BucketStay     = "Stay"
	BucketSeeDo    = "See & do"
	BucketShopping = "Shopping"
)

// buckets maps each navigation bucket to the raw categories it groups.
var buckets = map[string][]string{
	BucketEvents:   {"Music", "Tech", "Business", "Art", "Culture", "Festival", "Comedy", "Sports", "Party"},
	BucketEatDrink: {"Food", "Restaurant", "Bar", "Cafe", "Nightlife", "Drinks"},
	BucketStay:     {"Hotel", "Apartment", "Resort", "Lodge", "Guest House", "Shortlet"},
	BucketSeeDo:    {"Tour", "Museum", "Park", "Beach", "Attraction", "Gallery", "Adventure"},
	BucketShopping: {"Shopping", "Market", "Mall", "Fashion", "Crafts"},
}

// bucketOrder fixes iteration order for BucketOf and Buckets.
var bucketOrder = []string{BucketEvents, BucketEatDrink, BucketStay, BucketSeeDo, BucketShopping}

// Buckets lists the navigation buckets, "All" first.
func Buckets() []string {
	return append([]string{BucketAll}, bucketOrder...)
}

// IsBucket reports whether name is one of the fixed navigation buckets.
func IsBucket(name string) bool {
	if name == BucketAll {
		return true
	}
	_, ok := buckets[name]
	return ok
}

// InBucket reports whether a raw category belongs to bucket.
// "All" holds everything; an empty category belongs to nothing else.
func InBucket(category, bucket string) bool {
	if bucket == BucketAll {
		return true
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return false
	}
	for _, member := range buckets[bucket] {
		if strings.EqualFold(member, category) {
			return true
		}
	}
	return false
}

// BucketOf returns the first bucket holding category, or "" for unknown ones.
func BucketOf(category string) string {
	for _, b := range bucketOrder {
		if InBucket(category, b) {
			return b
		}
	}
	return ""
}
