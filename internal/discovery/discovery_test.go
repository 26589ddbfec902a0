package discovery

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june = time.Date(2025, time.June, 14, 12, 0, 0, 0, time.UTC)

func sampleRecords() []Record {
	return []Record{
		{ID: "1", Title: "Afrobeats Night", Date: "Saturday, May 10th", Location: "Lekki, Lagos", Price: "Free", Category: "Music"},
		{ID: "2", Title: "Lagos Tech Fest", Date: "Sunday, June 1st", Location: "Victoria Island, Lagos", Price: "₦5,000", Category: "Tech"},
		{ID: "3", Title: "Suya Spot", Date: "Friday, June 20th", Location: "Wuse, Abuja", Price: "₦2,500", Category: "Food"},
		{ID: "4", Title: "Eko Hotel", Date: "Monday, July 7th", Location: "Victoria Island, Lagos", Price: "₦85,000", Category: "Hotel"},
		{ID: "5", Title: "Art Walk", Date: "Saturday, June 28th", Location: "Ikoyi, Lagos", Price: "₦12,000", Category: "Art"},
		{ID: "6", Title: "Balogun Market", Date: "", Location: "Lagos Island, Lagos", Price: "ask vendor", Category: "Market"},
	}
}

func numbered(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{ID: fmt.Sprintf("%02d", i+1), Title: fmt.Sprintf("Event %02d", i+1), Category: "Music"}
	}
	return out
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestInBucket(t *testing.T) {
	assert.True(t, InBucket("Tech", BucketEvents))
	assert.True(t, InBucket(" tech ", BucketEvents))
	assert.False(t, InBucket("Food", BucketEvents))
	assert.True(t, InBucket("Food", BucketEatDrink))
	assert.True(t, InBucket("Whatever", BucketAll))
	assert.True(t, InBucket("", BucketAll))
	assert.False(t, InBucket("", BucketEvents))
	assert.False(t, InBucket("Knitting", BucketShopping))

	assert.Equal(t, BucketStay, BucketOf("Hotel"))
	assert.Equal(t, "", BucketOf("Knitting"))
	assert.Equal(t, BucketAll, Buckets()[0])
}

func TestFilter_CategoryBucket(t *testing.T) {
	got := FilterAt(sampleRecords(), Selection{Category: BucketEvents}, june)
	assert.Equal(t, []string{"1", "2", "5"}, ids(got))

	// categories outside the bucket table match the raw category
	got = FilterAt(sampleRecords(), Selection{Category: "Market"}, june)
	assert.Equal(t, []string{"6"}, ids(got))
	got = FilterAt(sampleRecords(), Selection{Category: "Cinema"}, june)
	assert.Empty(t, got)
}

func TestFilter_RawCategoryIgnoresCase(t *testing.T) {
	lower := FilterAt(sampleRecords(), Selection{Category: "market"}, june)
	upper := FilterAt(sampleRecords(), Selection{Category: "Market"}, june)
	assert.NotEmpty(t, upper)
	assert.Equal(t, ids(upper), ids(lower))
	assert.Equal(t, Selection{Category: "market"}.Key(), Selection{Category: "Market"}.Key())
}

func TestIsRelativeDate(t *testing.T) {
	assert.True(t, IsRelativeDate(DateThisMonth))
	assert.True(t, IsRelativeDate(" next month "))
	assert.False(t, IsRelativeDate("June"))
	assert.False(t, IsRelativeDate(DateAll))
}

func TestFilter_ThisMonth(t *testing.T) {
	records := []Record{
		{ID: "1", Price: "Free", Date: "Saturday, May 10th"},
		{ID: "2", Price: "₦5,000", Date: "Sunday, June 1st"},
	}
	got := FilterAt(records, Selection{Date: DateThisMonth}, june)
	assert.Equal(t, []string{"2"}, ids(got))

	got = FilterAt(records, Selection{Date: "May"}, june)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_DateWindows(t *testing.T) {
	next := FilterAt(sampleRecords(), Selection{Date: DateNextMonth}, june)
	assert.Equal(t, []string{"4"}, ids(next))

	// Jan 31 + 1 month must still land in February
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	feb := []Record{{ID: "a", Date: "Friday, February 7th"}, {ID: "b", Date: "Monday, March 3rd"}}
	assert.Equal(t, []string{"a"}, ids(FilterAt(feb, Selection{Date: DateNextMonth}, jan31)))

	weekend := FilterAt(sampleRecords(), Selection{Date: DateThisWeekend}, june)
	assert.Equal(t, []string{"1", "2", "5"}, ids(weekend))

	unknown := FilterAt(sampleRecords(), Selection{Date: "Sometime"}, june)
	assert.Equal(t, ids(sampleRecords()), ids(unknown))
}

func TestFilter_NeighborhoodAndPrice(t *testing.T) {
	got := FilterAt(sampleRecords(), Selection{Neighborhood: "victoria island"}, june)
	assert.Equal(t, []string{"2", "4"}, ids(got))

	got = FilterAt(sampleRecords(), Selection{Price: PriceBucketLow}, june)
	assert.Equal(t, []string{"2", "3"}, ids(got))

	got = FilterAt(sampleRecords(), Selection{Price: PriceBucketFree, Category: BucketEvents}, june)
	assert.Equal(t, []string{"1"}, ids(got))

	got = FilterAt(sampleRecords(), Selection{City: "abuja"}, june)
	assert.Equal(t, []string{"3"}, ids(got))

	got = FilterAt(sampleRecords(), Selection{Name: "tech"}, june)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_Query(t *testing.T) {
	got := FilterAt(sampleRecords(), Selection{Query: "lagos market"}, june)
	assert.Equal(t, []string{"6"}, ids(got))

	got = FilterAt(sampleRecords(), Selection{Query: "  VICTORIA  tech "}, june)
	assert.Equal(t, []string{"2"}, ids(got))

	got = FilterAt(sampleRecords(), Selection{Query: "abuja", Category: BucketEvents}, june)
	assert.Empty(t, got)

	assert.Nil(t, TextPredicate("   "))
	assert.False(t, Selection{Query: "x"}.IsBypass())
	assert.NotEqual(t, Selection{Query: "x"}.Key(), Selection{}.Key())
}

func TestFilter_BypassReturnsInput(t *testing.T) {
	records := sampleRecords()
	sel := Selection{Category: BucketAll, Date: DateAll, Neighborhood: NeighborhoodAll, Price: PriceAll}
	require.True(t, sel.IsBypass())

	got := FilterAt(records, sel, june)
	assert.Equal(t, records, got)
}

func TestFilter_Idempotent(t *testing.T) {
	selections := []Selection{
		{Category: BucketEvents},
		{Date: DateThisMonth, Neighborhood: "Lagos"},
		{Price: PriceBucketMedium},
		{Category: "Food", Price: PriceBucketLow},
	}
	for _, sel := range selections {
		once := FilterAt(sampleRecords(), sel, june)
		twice := FilterAt(once, sel, june)
		assert.Equal(t, once, twice, "selection %+v", sel)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := Clone(records)
	_ = FilterAt(records, Selection{Category: BucketEvents}, june)
	_ = Sort(records, SortAlphabetical)
	assert.Equal(t, before, records)
}

func TestSort_Alphabetical(t *testing.T) {
	records := []Record{{ID: "1", Title: "Zeta"}, {ID: "2", Title: "Alpha"}}
	got := Sort(records, SortAlphabetical)
	assert.Equal(t, "Alpha", got[0].Title)
	assert.Equal(t, "Zeta", got[1].Title)
	assert.Equal(t, "Zeta", records[0].Title)
}

func TestSort_Price(t *testing.T) {
	records := []Record{
		{ID: "a", Price: "₦50,000"},
		{ID: "b", Price: "call us"},
		{ID: "c", Price: "Free"},
		{ID: "d", Price: "₦15,000"},
		{ID: "e", Price: "₦4,000"},
	}
	assert.Equal(t, []string{"c", "e", "d", "a", "b"}, ids(Sort(records, SortPriceAsc)))
	assert.Equal(t, []string{"a", "d", "e", "c", "b"}, ids(Sort(records, SortPriceDesc)))
}

func TestSort_Recent(t *testing.T) {
	records := []Record{
		{ID: "2"},
		{ID: "10"},
		{ID: "x", CreatedAt: june.Add(-time.Hour)},
		{ID: "y", CreatedAt: june},
	}
	assert.Equal(t, []string{"y", "x", "10", "2"}, ids(Sort(records, SortRecent)))
}

func TestSort_NoneKeepsOrder(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, SortNone, ParseSortOrder("random"))
	assert.Equal(t, ids(records), ids(Sort(records, ParseSortOrder("random"))))
}

func TestSort_PreservesMembership(t *testing.T) {
	records := sampleRecords()
	for _, order := range []SortOrder{SortNone, SortRecent, SortPriceAsc, SortPriceDesc, SortAlphabetical} {
		got := Sort(records, order)
		assert.Len(t, got, len(records))
		assert.ElementsMatch(t, ids(records), ids(got), "order %s", order)
	}
}

func TestSort_DeterministicTies(t *testing.T) {
	a := []Record{{ID: "2", Price: "Free"}, {ID: "1", Price: "Free"}}
	b := []Record{{ID: "1", Price: "Free"}, {ID: "2", Price: "Free"}}
	assert.Equal(t, ids(Sort(a, SortPriceAsc)), ids(Sort(b, SortPriceAsc)))
	assert.Equal(t, Sort(Sort(a, SortPriceAsc), SortPriceAsc), Sort(a, SortPriceAsc))
}

func TestFilterKeepsSortedOrder(t *testing.T) {
	sorted := Sort(sampleRecords(), SortAlphabetical)
	filtered := FilterAt(sorted, Selection{Neighborhood: "Lagos"}, june)

	pos := map[string]int{}
	for i, r := range sorted {
		pos[r.ID] = i
	}
	for i := 1; i < len(filtered); i++ {
		assert.Less(t, pos[filtered[i-1].ID], pos[filtered[i].ID])
	}
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortOrder("Price: Low to High"))
	assert.Equal(t, SortPriceDesc, ParseSortOrder("price_desc"))
	assert.Equal(t, SortRecent, ParseSortOrder("Most recent"))
	assert.Equal(t, SortAlphabetical, ParseSortOrder(" Alphabetical "))
	assert.Equal(t, SortNone, ParseSortOrder(""))
}

func TestPriceBucket(t *testing.T) {
	cases := map[string]string{
		"Free":          PriceBucketFree,
		"":              PriceBucketFree,
		"₦0":            PriceBucketFree,
		"₦5,000":        PriceBucketLow,
		"NGN 12,500.00": PriceBucketMedium,
		"₦20,000":       PriceBucketMedium,
		"₦20,001":       PriceBucketHigh,
		"₦2,000 - ₦9k":  PriceBucketLow,
		"ask vendor":    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, PriceBucket(in), in)
	}
}

func TestPaginate(t *testing.T) {
	records := numbered(25)

	var lengths []int
	var all []Record
	for page := 1; ; page++ {
		p := Paginate(records, page, 12)
		lengths = append(lengths, len(p.Items))
		all = append(all, p.Items...)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 25, p.Total)
		if !p.HasMore {
			break
		}
	}
	assert.Equal(t, []int{12, 12, 1}, lengths)
	assert.Equal(t, records, all)

	assert.Empty(t, Paginate(records, 4, 12).Items)
	assert.Equal(t, 1, Paginate(records, 0, 12).Page)
	assert.Len(t, Paginate(records, 1, 0).Items, DefaultPageSize)

	far := Paginate(records, math.MaxInt, 12)
	assert.Empty(t, far.Items)
	assert.False(t, far.HasMore)
	assert.Equal(t, 25, far.Total)
	assert.Empty(t, Paginate(nil, math.MaxInt, 12).Items)

	page := NewPipeline().Query(records, Selection{Page: math.MaxInt64/12 + 2, PageSize: 12})
	assert.Empty(t, page.Items)
}

func TestAccumulator(t *testing.T) {
	records := numbered(25)
	sel := Selection{Category: BucketEvents}
	acc := NewAccumulator(sel)
	assert.True(t, acc.HasMore())
	assert.Equal(t, 1, acc.Next())

	require.Len(t, acc.LoadMore(records), 12)
	next := acc.LoadMore(records)
	assert.Len(t, next, 12)
	assert.Len(t, acc.Shown(), 24)
	assert.Equal(t, 2, acc.Page())

	acc.LoadMore(records)
	assert.Equal(t, records, acc.Shown())
	assert.False(t, acc.HasMore())
	assert.Nil(t, acc.LoadMore(records))

	// same view, different page: nothing changes
	assert.False(t, acc.Apply(Selection{Category: BucketEvents, Page: 3}))
	assert.Len(t, acc.Shown(), 25)

	assert.True(t, acc.Apply(Selection{Category: BucketAll, Sort: SortAlphabetical}))
	assert.Equal(t, 0, acc.Page())
	assert.Empty(t, acc.Shown())
	acc.LoadMore(records[:5])
	assert.Len(t, acc.Shown(), 5)
	assert.False(t, acc.HasMore())
}

func TestAccumulator_DropsStalePages(t *testing.T) {
	acc := NewAccumulator(Selection{PageSize: 2})
	assert.Nil(t, acc.Add(Page{Page: 2, Items: numbered(2), Total: 10}))
	assert.Len(t, acc.Add(Page{Page: 1, Items: numbered(2), Total: 10}), 2)
	assert.Equal(t, 2, acc.Next())
}

func TestPipeline_Query(t *testing.T) {
	p := &Pipeline{Clock: func() time.Time { return june }}
	page := p.Query(sampleRecords(), Selection{Date: DateThisMonth, Sort: SortAlphabetical, PageSize: 2})
	assert.Equal(t, []string{"5", "2"}, ids(page.Items))
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasMore)

	page = p.Query(sampleRecords(), Selection{Date: DateThisMonth, Sort: SortAlphabetical, PageSize: 2, Page: 2})
	assert.Equal(t, []string{"3"}, ids(page.Items))
	assert.False(t, page.HasMore)
}

func TestRecordWithDefaults(t *testing.T) {
	r := Record{ID: "1", Title: "x"}.WithDefaults()
	assert.Equal(t, PlaceholderImage, r.Image)
	assert.Equal(t, DateTBD, r.Date)
	assert.Equal(t, DateTBD, r.Time)
	assert.Equal(t, PriceFree, r.Price)
}
