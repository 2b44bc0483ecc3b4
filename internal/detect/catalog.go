package detect

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/diseases.yaml
var catalogYAML []byte

// Candidate is one reference entry of the catalog.
type Candidate struct {
	Name            string   `yaml:"name" json:"name"`
	Aliases         []string `yaml:"aliases" json:"aliases,omitempty"`
	Characteristics []string `yaml:"characteristics" json:"characteristics"`
	Confidence      float64  `yaml:"confidence" json:"confidence"`
	Description     string   `yaml:"description" json:"description"`
	Recommendation  string   `yaml:"recommendation" json:"recommendation"`
}

// Catalog is read-only after load and safe for concurrent use.
type Catalog struct {
	candidates []Candidate
	byName     map[string]int
}

var (
	ErrEmptyCatalog = errors.New("catalog has no entries")

	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// LoadCatalog decodes a YAML catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Diseases []Candidate `yaml:"diseases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Diseases) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		candidates: make([]Candidate, 0, len(doc.Diseases)),
		byName:     make(map[string]int, len(doc.Diseases)),
	}
	for _, d := range doc.Diseases {
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if key == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", len(c.candidates))
		}
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", d.Name)
		}
		if len(d.Characteristics) == 0 {
			return nil, fmt.Errorf("catalog entry %q has no characteristics", d.Name)
		}
		c.byName[key] = len(c.candidates)
		c.candidates = append(c.candidates, d)
	}
	return c, nil
}

// DefaultCatalog returns the embedded skin condition catalog.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func (c *Catalog) Len() int { return len(c.candidates) }

// All returns a copy of the entries in catalog order.
func (c *Catalog) All() []Candidate {
	out := make([]Candidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// Lookup finds an entry by name, case-insensitively.
func (c *Catalog) Lookup(name string) (Candidate, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Candidate{}, false
	}
	return c.candidates[i], true
}
