package discovery

// Page is one fixed-size window over a filtered and sorted set.
type Page struct {
	Items      []Record `json:"items"`
	Page       int      `json:"page"`
	PageSize   int      `json:"limit"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	HasMore    bool     `json:"has_more"`
}

// Paginate returns items [(page-1)*size, page*size) of records.
// Pages below 1 are treated as 1; pages past the end are empty.
func Paginate(records []Record, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(records)
	totalPages := (total + size - 1) / size

	start := total
	if page-1 < (total+size-1)/size {
		start = (page - 1) * size
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Items:      Clone(records[start:end]),
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    end < total,
	}
}

// Accumulator backs a "load more" list: each added page is appended to what
// is already shown. Applying a different selection starts over at page 1.
// Pages may come from Paginate over an in-memory view or from a remote API.
type Accumulator struct {
	key   string
	size  int
	page  int
	total int
	shown []Record
}

// NewAccumulator starts an empty list for sel; nothing is loaded yet.
func NewAccumulator(sel Selection) *Accumulator {
	a := &Accumulator{}
	a.reset(sel)
	return a
}

func (a *Accumulator) reset(sel Selection) {
	sel = sel.Normalize()
	a.key = sel.Key()
	a.size = sel.PageSize
	a.page = 0
	a.total = 0
	a.shown = nil
}

// Apply resets the list when sel describes a different view than the
// current one and reports whether it did. Page changes alone do not reset.
func (a *Accumulator) Apply(sel Selection) bool {
	if sel.Key() == a.key {
		return false
	}
	a.reset(sel)
	return true
}

// Add appends p when it is the next expected page and returns its items.
// Out-of-order pages, such as a late response for a previous view, are dropped.
func (a *Accumulator) Add(p Page) []Record {
	if p.Page != a.Next() {
		return nil
	}
	a.page = p.Page
	a.total = p.Total
	a.shown = append(a.shown, p.Items...)
	return p.Items
}

// LoadMore appends the next page of an in-memory view.
func (a *Accumulator) LoadMore(view []Record) []Record {
	if !a.HasMore() {
		return nil
	}
	return a.Add(Paginate(view, a.Next(), a.size))
}

// Next is the page number the following load should request.
func (a *Accumulator) Next() int { return a.page + 1 }

// HasMore reports whether another page may exist. Before the first load it
// is always true.
func (a *Accumulator) HasMore() bool { return a.page == 0 || len(a.shown) < a.total }

// Shown returns everything displayed so far.
func (a *Accumulator) Shown() []Record { return a.shown }

// Page is the last page loaded, 0 before the first load.
func (a *Accumulator) Page() int { return a.page }

// Size is the page size of the current view.
func (a *Accumulator) Size() int { return a.size }
