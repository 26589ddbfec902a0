package discovery

import (
	"strings"
	"time"
)

// Clock supplies the current time to calendar-window predicates.
type Clock func() time.Time

// Predicate reports whether a record passes one filter.
type Predicate func(Record) bool

// Filter returns the records matching every active predicate of sel, in
// input order. The input slice is not modified.
func Filter(records []Record, sel Selection) []Record {
	return FilterAt(records, sel, time.Now())
}

// FilterAt is Filter with an explicit "now" for the date windows.
func FilterAt(records []Record, sel Selection, now time.Time) []Record {
	if sel.IsBypass() {
		return Clone(records)
	}
	preds := Predicates(sel.Normalize(), now)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matchAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

// Predicates builds the active predicates for sel. Bypass values ("All",
// "All dates", empty) contribute nothing.
func Predicates(sel Selection, now time.Time) []Predicate {
	var preds []Predicate
	if p := categoryPredicate(sel.Category); p != nil {
		preds = append(preds, p)
	}
	if p := datePredicate(sel.Date, now); p != nil {
		preds = append(preds, p)
	}
	if p := neighborhoodPredicate(sel.Neighborhood); p != nil {
		preds = append(preds, p)
	}
	if p := pricePredicate(sel.Price); p != nil {
		preds = append(preds, p)
	}
	if sel.City != "" {
		city := strings.ToLower(sel.City)
		preds = append(preds, func(r Record) bool {
			return strings.EqualFold(r.City, sel.City) || containsFold(r.Location, city)
		})
	}
	if sel.Name != "" {
		name := strings.ToLower(sel.Name)
		preds = append(preds, func(r Record) bool { return containsFold(r.Title, name) })
	}
	if p := TextPredicate(sel.Query); p != nil {
		preds = append(preds, p)
	}
	return preds
}

func matchAll(r Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func categoryPredicate(category string) Predicate {
	if bypass(category, BucketAll) {
		return nil
	}
	if IsBucket(category) {
		return func(r Record) bool { return InBucket(r.Category, category) }
	}
	return func(r Record) bool { return strings.EqualFold(r.Category, category) }
}

func datePredicate(bucket string, now time.Time) Predicate {
	if bypass(bucket, DateAll) {
		return nil
	}
	switch {
	case strings.EqualFold(bucket, DateThisMonth):
		month := now.Month().String()
		return func(r Record) bool { return strings.Contains(r.Date, month) }
	case strings.EqualFold(bucket, DateNextMonth):
		month := now.AddDate(0, 1, 1-now.Day()).Month().String()
		return func(r Record) bool { return strings.Contains(r.Date, month) }
	case strings.EqualFold(bucket, DateThisWeekend):
		return func(r Record) bool {
			return strings.Contains(r.Date, "Sat") || strings.Contains(r.Date, "Sun")
		}
	}
	if m, ok := monthName(bucket); ok {
		return func(r Record) bool { return strings.Contains(r.Date, m) }
	}
	// unknown windows leave the set untouched
	return nil
}

func neighborhoodPredicate(hood string) Predicate {
	if bypass(hood, NeighborhoodAll) {
		return nil
	}
	lower := strings.ToLower(hood)
	return func(r Record) bool {
		return strings.EqualFold(r.Neighborhood, hood) || containsFold(r.Location, lower)
	}
}

func pricePredicate(bucket string) Predicate {
	if bypass(bucket, PriceAll) {
		return nil
	}
	return func(r Record) bool { return strings.EqualFold(PriceBucket(r.Price), bucket) }
}

// TextPredicate matches q against title, category, location and description.
// Every whitespace-separated term must appear in at least one of them.
func TextPredicate(q string) Predicate {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return nil
	}
	return func(r Record) bool {
		text := strings.ToLower(r.Title + "\n" + r.Category + "\n" + r.Location + "\n" + r.Description)
		for _, t := range terms {
			if !strings.Contains(text, t) {
				return false
			}
		}
		return true
	}
}

func monthName(s string) (string, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), s) {
			return m.String(), true
		}
	}
	return "", false
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
