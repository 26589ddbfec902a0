package discovery

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects one sort strategy. SortNone keeps the input order.
type SortOrder string

const (
	SortNone         SortOrder = "none"
	SortRecent       SortOrder = "recent"
	SortPriceAsc     SortOrder = "price_asc"
	SortPriceDesc    SortOrder = "price_desc"
	SortAlphabetical SortOrder = "alphabetical"
)

var sortAliases = map[string]SortOrder{
	"none":               SortNone,
	"recent":             SortRecent,
	"most recent":        SortRecent,
	"newest":             SortRecent,
	"price_asc":          SortPriceAsc,
	"price: low to high": SortPriceAsc,
	"price low to high":  SortPriceAsc,
	"price_desc":         SortPriceDesc,
	"price: high to low": SortPriceDesc,
	"price high to low":  SortPriceDesc,
	"alphabetical":       SortAlphabetical,
	"a-z":                SortAlphabetical,
	"name":               SortAlphabetical,
}

// ParseSortOrder accepts UI labels ("Price: Low to High") and slugs
// ("price_asc"). Anything unrecognised maps to SortNone.
func ParseSortOrder(s string) SortOrder {
	if o, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return o
	}
	return SortNone
}

// Sort returns a reordered copy of records. Ties fall back to id ascending,
// so the result does not depend on input order for any strategy but SortNone.
func Sort(records []Record, order SortOrder) []Record {
	out := Clone(records)
	var less func(a, b Record) int
	switch order {
	case SortRecent:
		less = compareRecent
	case SortPriceAsc:
		less = func(a, b Record) int { return cmp.Compare(priceRank(a.Price), priceRank(b.Price)) }
	case SortPriceDesc:
		less = comparePriceDesc
	case SortAlphabetical:
		col := collate.New(language.English, collate.Loose)
		less = func(a, b Record) int { return col.CompareString(a.Title, b.Title) }
	default:
		return out
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		if c := less(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// compareRecent puts later CreatedAt first. Records without a timestamp come
// after timestamped ones and are compared by numeric id, highest first.
func compareRecent(a, b Record) int {
	aHas, bHas := !a.CreatedAt.IsZero(), !b.CreatedAt.IsZero()
	switch {
	case aHas && bHas:
		return b.CreatedAt.Compare(a.CreatedAt)
	case aHas:
		return -1
	case bHas:
		return 1
	}
	an, aok := a.numericID()
	bn, bok := b.numericID()
	switch {
	case aok && bok:
		return cmp.Compare(bn, an)
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}

// comparePriceDesc reverses the bucket rank but still keeps unreadable
// prices at the end.
func comparePriceDesc(a, b Record) int {
	ar, br := priceRank(a.Price), priceRank(b.Price)
	const unknown = 4
	switch {
	case ar == unknown && br == unknown:
		return 0
	case ar == unknown:
		return 1
	case br == unknown:
		return -1
	}
	return cmp.Compare(br, ar)
}
