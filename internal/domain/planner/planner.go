// Package planner turns mastery levels into ordered, style-aware learning
// recommendations.
package planner

import (
	"fmt"
	"sort"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Tier boundaries and level range.
const (
	intermediateLevel = 5
	advancedLevel     = 8
	minLevel          = 0
	maxLevel          = 10
	genericDuration   = "2-4 weeks"

	genericChallengeDuration = "3-4 weeks"
)

// Catalogue is the read-only module and challenge lookup the planner needs.
type Catalogue interface {
	Module(subject model.Subject, tier model.Tier) (model.Module, bool)
	Challenges() []model.Challenge
}

// Planner builds recommendations from an injected catalogue. It holds no
// mutable state and is safe for concurrent use.
type Planner struct {
	catalogue Catalogue
}

// New creates a planner over the given catalogue.
func New(c Catalogue) *Planner {
	return &Planner{catalogue: c}
}

// TierFor maps a mastery level to its module tier.
func TierFor(level int) model.Tier {
	switch {
	case level < intermediateLevel:
		return model.TierBeginner
	case level < advancedLevel:
		return model.TierIntermediate
	default:
		return model.TierAdvanced
	}
}

// Plan returns one recommendation per subject in levels, weak subjects
// first. When every subject is strong it returns enrichment challenges.
func (p *Planner) Plan(levels map[model.Subject]int, weak []model.Subject, style model.LearningStyle) ([]model.Recommendation, error) {
	if !style.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLearningStyle, style)
	}
	if len(levels) == 0 {
		return []model.Recommendation{}, nil
	}

	clamped := make(map[model.Subject]int, len(levels))
	for s, l := range levels {
		clamped[s] = clampLevel(l)
	}
	weakSet := make(map[model.Subject]bool, len(weak))
	for _, s := range weak {
		if _, ok := clamped[s]; ok {
			weakSet[s] = true
		}
	}

	if len(weakSet) == 0 && allAdvanced(clamped) {
		return p.enrichment(clamped, style), nil
	}

	subjects := make([]model.Subject, 0, len(clamped))
	for s := range clamped {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		a, b := subjects[i], subjects[j]
		if weakSet[a] != weakSet[b] {
			return weakSet[a]
		}
		if clamped[a] != clamped[b] {
			return clamped[a] < clamped[b]
		}
		return model.PriorityLess(a, b)
	})

	recs := make([]model.Recommendation, 0, len(subjects))
	for _, s := range subjects {
		recs = append(recs, p.moduleRecommendation(s, clamped[s], weakSet[s], style))
	}
	return recs, nil
}

func (p *Planner) moduleRecommendation(subject model.Subject, level int, weak bool, style model.LearningStyle) model.Recommendation {
	tier := TierFor(level)
	mod, ok := p.lookup(subject, tier)
	if !ok {
		mod = model.Module{
			Subject:       subject,
			Tier:          tier,
			Title:         fmt.Sprintf("%s %s Practice", subject, tier),
			Description:   fmt.Sprintf("Guided %s practice in %s.", tier, subject),
			EstimatedTime: genericDuration,
		}
	}
	kind := model.KindProgression
	if weak {
		kind = model.KindRemediation
	}
	return model.Recommendation{
		Subject:       subject,
		ModuleTitle:   mod.Title,
		Description:   mod.Description,
		EstimatedTime: mod.EstimatedTime,
		Tier:          tier,
		Kind:          kind,
		Weak:          weak,
		Level:         level,
		Rationale:     rationale(style, subject, string(tier)+" module"),
	}
}

func (p *Planner) lookup(subject model.Subject, tier model.Tier) (model.Module, bool) {
	if p.catalogue == nil {
		return model.Module{}, false
	}
	return p.catalogue.Module(subject, tier)
}

// enrichment picks one challenge per present subject in priority order. A
// subject without a catalogue challenge gets a generic one.
func (p *Planner) enrichment(levels map[model.Subject]int, style model.LearningStyle) []model.Recommendation {
	bySubject := make(map[model.Subject]model.Challenge)
	if p.catalogue != nil {
		for _, c := range p.catalogue.Challenges() {
			if _, present := levels[c.Subject]; !present {
				continue
			}
			if _, seen := bySubject[c.Subject]; !seen {
				bySubject[c.Subject] = c
			}
		}
	}

	subjects := make([]model.Subject, 0, len(levels))
	for s := range levels {
		subjects = append(subjects, s)
	}
	model.SortSubjects(subjects)

	recs := make([]model.Recommendation, 0, len(subjects))
	for _, s := range subjects {
		c, ok := bySubject[s]
		if !ok {
			c = model.Challenge{
				Subject:       s,
				Title:         fmt.Sprintf("%s Enrichment Challenge", s),
				Description:   fmt.Sprintf("Independent project work that extends %s beyond the advanced module.", s),
				EstimatedTime: genericChallengeDuration,
			}
		}
		recs = append(recs, model.Recommendation{
			Subject:       s,
			ModuleTitle:   c.Title,
			Description:   c.Description,
			EstimatedTime: c.EstimatedTime,
			Tier:          model.TierAdvanced,
			Kind:          model.KindEnrichment,
			Level:         levels[s],
			Rationale:     rationale(style, s, "enrichment challenge"),
		})
	}
	return recs
}

func allAdvanced(levels map[model.Subject]int) bool {
	for _, l := range levels {
		if l < advancedLevel {
			return false
		}
	}
	return true
}

func clampLevel(l int) int {
	if l < minLevel {
		return minLevel
	}
	if l > maxLevel {
		return maxLevel
	}
	return l
}
