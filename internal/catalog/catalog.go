// Package catalog serves posts from a static YAML file loaded at startup.
package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/models"
	"gopkg.in/yaml.v3"
)

type file struct {
	Events []discovery.Record `yaml:"events"`
}

// Catalog is a read-only, in-memory event store.
type Catalog struct {
	records []discovery.Record
	byID    map[string]int
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML. Ids must be unique and titles non-empty.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Events)
}

// New wraps records, rejecting duplicate ids and untitled entries.
func New(records []discovery.Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]discovery.Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("catalog entry %s: missing title", r.ID)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("catalog entry %s: duplicate id", r.ID)
		}
		c.byID[r.ID] = len(c.records)
		c.records = append(c.records, r)
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.records) }

func (c *Catalog) ListPosts(ctx context.Context) ([]discovery.Record, error) {
	return discovery.Clone(c.records), nil
}

func (c *Catalog) GetPost(ctx context.Context, id string) (*discovery.Record, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	r := c.records[i]
	return &r, nil
}

func (c *Catalog) GetPostsByIDs(ctx context.Context, ids []string) ([]discovery.Record, error) {
	return models.OrderByIDs(c.records, ids), nil
}

func (c *Catalog) ListCities(ctx context.Context) ([]string, error) {
	cities := make([]string, 0, len(c.records))
	for _, r := range c.records {
		cities = append(cities, cityOf(r))
	}
	return models.SortCities(cities), nil
}

// cityOf prefers the explicit city, else the last part of "Area, City".
func cityOf(r discovery.Record) string {
	if r.City != "" {
		return r.City
	}
	parts := strings.Split(r.Location, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

var _ models.PostsRepo = (*Catalog)(nil)
