// Package discovery holds the listing pipeline shared by every list view:
// category classification, filtering, sorting and pagination over an
// in-memory set of records. All functions are pure; none mutate their input.
package discovery

import "time"

// Pipeline runs filter, sort and paginate in that order.
type Pipeline struct {
	Clock Clock
}

// NewPipeline returns a pipeline reading the wall clock.
func NewPipeline() *Pipeline {
	return &Pipeline{Clock: time.Now}
}

// View returns the full filtered and sorted set for sel.
func (p *Pipeline) View(records []Record, sel Selection) []Record {
	sel = sel.Normalize()
	return Sort(FilterAt(records, sel, p.Now()), sel.Sort)
}

// Query returns the page of the view requested by sel.
func (p *Pipeline) Query(records []Record, sel Selection) Page {
	sel = sel.Normalize()
	return Paginate(p.View(records, sel), sel.Page, sel.PageSize)
}

// Now is the time the date windows are evaluated against.
func (p *Pipeline) Now() time.Time {
	if p == nil || p.Clock == nil {
		return time.Now()
	}
	return p.Clock()
}
