// Package catalog maps facility ids and spoken names to facilities. The
// voice front-end hands over whatever the user said; Match turns that into
// an id the schedule provider understands.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog es un FacilityCatalog en memoria, inmutable tras cargarse.
type Catalog struct {
	byID     map[string]domain.Facility
	bySpoken map[string]string
	ordered  []domain.Facility
}

var _ ports.FacilityCatalog = (*Catalog)(nil)

type document struct {
	Facilities []entryDoc `yaml:"facilities"`
}

type entryDoc struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path yields Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %w", domain.ErrInvalidConfig, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML. Ids must be unique and valid, and a
// spoken name may point at only one facility.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	c := &Catalog{
		byID:     make(map[string]domain.Facility, len(doc.Facilities)),
		bySpoken: make(map[string]string),
	}

	for _, e := range doc.Facilities {
		f := domain.NewFacility(e.ID, e.Name)
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate facility id %q", domain.ErrInvalidConfig, f.ID)
		}

		for _, a := range e.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				f.Aliases = append(f.Aliases, a)
			}
		}

		for _, spoken := range append([]string{f.ID, f.Name}, f.Aliases...) {
			key := normalize(spoken)
			if key == "" {
				continue
			}
			if owner, taken := c.bySpoken[key]; taken && owner != f.ID {
				return nil, fmt.Errorf("%w: %q names both %s and %s", domain.ErrInvalidConfig, spoken, owner, f.ID)
			}
			c.bySpoken[key] = f.ID
		}

		c.byID[f.ID] = f
		c.ordered = append(c.ordered, f)
	}

	sort.SliceStable(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })
	return c, nil
}

// Lookup busca por id exacto.
func (c *Catalog) Lookup(id string) (domain.Facility, bool) {
	f, ok := c.byID[strings.TrimSpace(id)]
	return f, ok
}

// Match resolves a spoken name, alias or id, ignoring case, punctuation,
// extra whitespace and a leading "the".
func (c *Catalog) Match(spoken string) (domain.Facility, bool) {
	key := normalize(spoken)
	if key == "" {
		return domain.Facility{}, false
	}
	id, ok := c.bySpoken[key]
	if !ok {
		id, ok = c.bySpoken[strings.TrimPrefix(key, "the ")]
	}
	if !ok {
		return domain.Facility{}, false
	}
	return c.byID[id], true
}

// All returns every facility ordered by id.
func (c *Catalog) All() []domain.Facility {
	return append([]domain.Facility(nil), c.ordered...)
}

// Len retorna el número de facilities.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			return ' '
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
