package discovery

import (
	"strconv"
	"strings"
	"time"
)

const (
	PlaceholderImage = "/images/placeholder.jpg"
	DateTBD          = "TBD"
	PriceFree        = "Free"
)

// Record is one event, venue or post as seen by the listing pipeline.
type Record struct {
	ID           string    `bson:"id" json:"id" yaml:"id"`
	Title        string    `bson:"title" json:"title" yaml:"title"`
	Date         string    `bson:"date" json:"date" yaml:"date"`
	Time         string    `bson:"time" json:"time" yaml:"time"`
	Location     string    `bson:"location" json:"location" yaml:"location"`
	City         string    `bson:"city,omitempty" json:"city,omitempty" yaml:"city"`
	Neighborhood string    `bson:"neighborhood,omitempty" json:"neighborhood,omitempty" yaml:"neighborhood"`
	Price        string    `bson:"price" json:"price" yaml:"price"`
	Image        string    `bson:"image,omitempty" json:"image" yaml:"image"`
	Category     string    `bson:"category" json:"category" yaml:"category"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty" yaml:"description"`
	CreatedAt    time.Time `bson:"created_at,omitempty" json:"created_at,omitempty" yaml:"created_at"`
}

// WithDefaults fills display fields the store left empty.
func (r Record) WithDefaults() Record {
	if strings.TrimSpace(r.Image) == "" {
		r.Image = PlaceholderImage
	}
	if strings.TrimSpace(r.Date) == "" {
		r.Date = DateTBD
	}
	if strings.TrimSpace(r.Time) == "" {
		r.Time = DateTBD
	}
	if strings.TrimSpace(r.Price) == "" {
		r.Price = PriceFree
	}
	return r
}

// numericID reports the id as an integer when it is one.
func (r Record) numericID() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(r.ID), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Clone returns a copy of records that callers may reorder freely.
func Clone(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
