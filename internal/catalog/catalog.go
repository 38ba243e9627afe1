// Package catalog holds the list of services a customer can book. The list
// is either the built-in salon menu or a TOML file named by CATALOG_FILE.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Service is one bookable item on the menu.
type Service struct {
	ID              int     `json:"id"               toml:"id"`
	Name            string  `json:"name"             toml:"name"`
	Price           float64 `json:"price"            toml:"price"`
	DurationMinutes int     `json:"duration_minutes" toml:"duration_minutes"`
}

// Catalog is an immutable, ordered set of services addressable by name.
type Catalog struct {
	items  []Service
	byName map[string]Service
}

var ErrEmpty = errors.New("catalog: no services defined")

// Default returns the salon's standard menu.
func Default() *Catalog {
	c, _ := New([]Service{
		{ID: 1, Name: "Saç Kesimi (Erkek)", Price: 250, DurationMinutes: 30},
		{ID: 2, Name: "Saç Kesimi (Kadın)", Price: 400, DurationMinutes: 45},
		{ID: 3, Name: "Saç Boyama", Price: 800, DurationMinutes: 90},
		{ID: 4, Name: "Fön", Price: 200, DurationMinutes: 30},
		{ID: 5, Name: "Keratin Bakım", Price: 1500, DurationMinutes: 120},
		{ID: 6, Name: "Sakal Tıraşı", Price: 150, DurationMinutes: 20},
		{ID: 7, Name: "Manikür", Price: 300, DurationMinutes: 45},
		{ID: 8, Name: "Pedikür", Price: 350, DurationMinutes: 60},
		{ID: 9, Name: "Ağda", Price: 500, DurationMinutes: 60},
		{ID: 10, Name: "Cilt Bakımı", Price: 600, DurationMinutes: 60},
	})
	return c
}

// New validates items and builds a Catalog. Names must be non-empty and
// unique; IDs must be unique and positive.
func New(items []Service) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		items:  make([]Service, 0, len(items)),
		byName: make(map[string]Service, len(items)),
	}
	ids := make(map[int]struct{}, len(items))
	for i, s := range items {
		s.Name = strings.TrimSpace(s.Name)
		switch {
		case s.Name == "":
			return nil, fmt.Errorf("catalog: service #%d has no name", i+1)
		case s.ID <= 0:
			return nil, fmt.Errorf("catalog: service %q has invalid id %d", s.Name, s.ID)
		case s.Price < 0:
			return nil, fmt.Errorf("catalog: service %q has negative price", s.Name)
		case s.DurationMinutes < 0:
			return nil, fmt.Errorf("catalog: service %q has negative duration", s.Name)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate service name %q", s.Name)
		}
		if _, dup := ids[s.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate service id %d", s.ID)
		}
		ids[s.ID] = struct{}{}
		c.byName[s.Name] = s
		c.items = append(c.items, s)
	}
	return c, nil
}

type file struct {
	Services []Service `toml:"services"`
}

// Load reads a catalog from a TOML file of [[services]] tables.
func Load(path string) (*Catalog, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return New(f.Services)
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

// All returns the services in declaration order.
func (c *Catalog) All() []Service {
	out := make([]Service, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds a service by its exact (trimmed) name.
func (c *Catalog) Lookup(name string) (Service, bool) {
	s, ok := c.byName[strings.TrimSpace(name)]
	return s, ok
}

// Has reports whether name is a known service.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns service names in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.items))
	for i, s := range c.items {
		out[i] = s.Name
	}
	return out
}
