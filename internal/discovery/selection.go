package discovery

import (
	"fmt"
	"strings"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100

	DateAll         = "All dates"
	DateThisMonth   = "This month"
	DateNextMonth   = "Next month"
	DateThisWeekend = "This weekend"

	NeighborhoodAll = "All"
	PriceAll        = "All"
)

// Selection is the user's current filter, sort and page choice.
type Selection struct {
	Category     string    `form:"category" json:"category,omitempty"`
	Date         string    `form:"date" json:"date,omitempty"`
	Neighborhood string    `form:"neighborhood" json:"neighborhood,omitempty"`
	Price        string    `form:"price" json:"price,omitempty"`
	City         string    `form:"city" json:"city,omitempty"`
	Name         string    `form:"name" json:"name,omitempty"`
	Query        string    `form:"q" json:"q,omitempty"`
	Sort         SortOrder `form:"-" json:"sort,omitempty"`
	Page         int       `form:"page" json:"page,omitempty"`
	PageSize     int       `form:"limit" json:"limit,omitempty"`
}

// Normalize trims inputs and clamps paging.
func (s Selection) Normalize() Selection {
	s.Category = strings.TrimSpace(s.Category)
	s.Date = strings.TrimSpace(s.Date)
	s.Neighborhood = strings.TrimSpace(s.Neighborhood)
	s.Price = strings.TrimSpace(s.Price)
	s.City = strings.TrimSpace(s.City)
	s.Name = strings.TrimSpace(s.Name)
	s.Query = strings.TrimSpace(s.Query)
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}
	return s
}

// Key identifies the filtered and sorted view, ignoring the page.
// Two selections with equal keys show the same sequence of records.
func (s Selection) Key() string {
	n := s.Normalize()
	return fmt.Sprintf("cat=%s|date=%s|hood=%s|price=%s|city=%s|name=%s|q=%s|sort=%s|size=%d",
		strings.ToLower(n.Category), strings.ToLower(n.Date), strings.ToLower(n.Neighborhood),
		strings.ToLower(n.Price), strings.ToLower(n.City), strings.ToLower(n.Name), strings.ToLower(n.Query), n.Sort, n.PageSize)
}

// IsBypass reports whether no filter predicate is active.
func (s Selection) IsBypass() bool {
	n := s.Normalize()
	return bypass(n.Category, BucketAll) &&
		bypass(n.Date, DateAll) &&
		bypass(n.Neighborhood, NeighborhoodAll) &&
		bypass(n.Price, PriceAll) &&
		n.City == "" && n.Name == "" && n.Query == ""
}

// IsRelativeDate reports whether the date window moves with the clock.
func IsRelativeDate(date string) bool {
	date = strings.TrimSpace(date)
	return strings.EqualFold(date, DateThisMonth) || strings.EqualFold(date, DateNextMonth)
}

func bypass(value, all string) bool {
	return value == "" || value == all || value == "All"
}
