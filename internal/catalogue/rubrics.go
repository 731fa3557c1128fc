package catalogue

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/internal/domain/scoring"
)

//go:embed data/rubrics.yaml
var defaultRubrics []byte

// RubricFile is the YAML layout of a rubrics file.
type RubricFile struct {
	Rubrics []model.Rubric `yaml:"rubrics"`
}

// RubricStore serves published rubrics by id. Rubrics are validated on load
// and copied on read, so callers cannot alter a published rubric.
type RubricStore struct {
	rubrics map[string]model.Rubric
	ids     []string
}

// DefaultRubrics returns the embedded rubric set.
func DefaultRubrics() (*RubricStore, error) {
	return ParseRubrics(defaultRubrics)
}

// LoadRubrics reads rubrics from path. An empty path loads the embedded set.
func LoadRubrics(path string) (*RubricStore, error) {
	if path == "" {
		return DefaultRubrics()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubrics file %s: %w", path, err)
	}
	return ParseRubrics(data)
}

// ParseRubrics decodes rubrics YAML and validates every rubric.
func ParseRubrics(data []byte) (*RubricStore, error) {
	var f RubricFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	s := &RubricStore{rubrics: make(map[string]model.Rubric, len(f.Rubrics))}
	for i := range f.Rubrics {
		r := f.Rubrics[i]
		if r.ID == "" {
			return nil, fmt.Errorf("%w: rubric %d has no id", ErrInvalidCatalogue, i)
		}
		if _, dup := s.rubrics[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate rubric %q", ErrInvalidCatalogue, r.ID)
		}
		if err := scoring.ValidateRubric(&r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalogue, err)
		}
		s.rubrics[r.ID] = r
		s.ids = append(s.ids, r.ID)
	}
	return s, nil
}

// Rubric returns a copy of the rubric with the given id.
func (s *RubricStore) Rubric(id string) (model.Rubric, error) {
	r, ok := s.rubrics[id]
	if !ok {
		return model.Rubric{}, fmt.Errorf("%w: %q", ErrRubricNotFound, id)
	}
	return cloneRubric(r), nil
}

// IDs returns rubric ids in file order.
func (s *RubricStore) IDs() []string {
	return append([]string(nil), s.ids...)
}

func cloneRubric(r model.Rubric) model.Rubric {
	criteria := make([]model.Criterion, len(r.Criteria))
	for i, c := range r.Criteria {
		c.Signals = append([]string(nil), c.Signals...)
		if c.Questions != nil {
			questions := make([]model.Question, len(c.Questions))
			for j, q := range c.Questions {
				q.Answers = append([]string(nil), q.Answers...)
				questions[j] = q
			}
			c.Questions = questions
		}
		criteria[i] = c
	}
	r.Criteria = criteria
	return r
}
