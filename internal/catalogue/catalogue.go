// Package catalogue holds the static module catalogue, enrichment challenges
// and published rubrics. Data is embedded and may be overridden from YAML
// files at process start.
package catalogue

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

//go:embed data/catalogue.yaml
var defaultCatalogue []byte

type moduleKey struct {
	subject model.Subject
	tier    model.Tier
}

// File is the YAML layout of a catalogue file.
type File struct {
	Modules    []model.Module    `yaml:"modules"`
	Challenges []model.Challenge `yaml:"challenges"`
}

// Catalogue is an immutable lookup of modules by (subject, tier) and the
// ordered list of enrichment challenges.
type Catalogue struct {
	modules    map[moduleKey]model.Module
	ordered    []model.Module
	challenges []model.Challenge
}

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	return Parse(defaultCatalogue)
}

// Load reads a catalogue from path. An empty path loads the embedded one.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates catalogue YAML.
func Parse(data []byte) (*Catalogue, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	return New(f)
}

// New validates f and builds a catalogue from it.
func New(f File) (*Catalogue, error) {
	c := &Catalogue{
		modules:    make(map[moduleKey]model.Module, len(f.Modules)),
		ordered:    make([]model.Module, 0, len(f.Modules)),
		challenges: make([]model.Challenge, 0, len(f.Challenges)),
	}
	for i, m := range f.Modules {
		switch {
		case strings.TrimSpace(string(m.Subject)) == "":
			return nil, fmt.Errorf("%w: module %d has no subject", ErrInvalidCatalogue, i)
		case !model.ValidTier(m.Tier):
			return nil, fmt.Errorf("%w: module %q has unknown tier %q", ErrInvalidCatalogue, m.Title, m.Tier)
		case strings.TrimSpace(m.Title) == "":
			return nil, fmt.Errorf("%w: module %d has no title", ErrInvalidCatalogue, i)
		}
		k := moduleKey{m.Subject, m.Tier}
		if _, dup := c.modules[k]; dup {
			return nil, fmt.Errorf("%w: duplicate module for %s/%s", ErrInvalidCatalogue, m.Subject, m.Tier)
		}
		c.modules[k] = m
		c.ordered = append(c.ordered, m)
	}
	for i, ch := range f.Challenges {
		if strings.TrimSpace(string(ch.Subject)) == "" || strings.TrimSpace(ch.Title) == "" {
			return nil, fmt.Errorf("%w: challenge %d needs a subject and title", ErrInvalidCatalogue, i)
		}
		c.challenges = append(c.challenges, ch)
	}
	return c, nil
}

// Module returns the module for subject and tier.
func (c *Catalogue) Module(subject model.Subject, tier model.Tier) (model.Module, bool) {
	m, ok := c.modules[moduleKey{subject, tier}]
	return m, ok
}

// Modules returns every module in file order.
func (c *Catalogue) Modules() []model.Module {
	return append([]model.Module(nil), c.ordered...)
}

// Challenges returns the enrichment challenges in file order.
func (c *Catalogue) Challenges() []model.Challenge {
	return append([]model.Challenge(nil), c.challenges...)
}
