package model

// Tier is the difficulty tier of a learning module.
type Tier string

// Difficulty tiers.
const (
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
)

// ValidTier reports whether t is one of the three tiers.
func ValidTier(t Tier) bool {
	switch t {
	case TierBeginner, TierIntermediate, TierAdvanced:
		return true
	}
	return false
}

// RecommendationKind distinguishes remediation from enrichment output.
type RecommendationKind string

// Recommendation kinds.
const (
	KindRemediation RecommendationKind = "remediation" // weak subject
	KindProgression RecommendationKind = "progression" // non-weak subject
	KindEnrichment  RecommendationKind = "enrichment"  // all subjects strong
)

// Recommendation is an ephemeral next-step suggestion. It is regenerated on
// every request and never persisted.
type Recommendation struct {
	Subject       Subject            `json:"subject"`
	ModuleTitle   string             `json:"module_title"`
	Description   string             `json:"description,omitempty"`
	EstimatedTime string             `json:"estimated_time,omitempty"`
	Tier          Tier               `json:"tier"`
	Kind          RecommendationKind `json:"kind"`
	Weak          bool               `json:"weak"`
	Level         int                `json:"level"`
	Rationale     string             `json:"rationale"`
}

// LearningStyle is a student's preferred mode of learning.
type LearningStyle string

// The fixed learning style enumeration.
const (
	StyleVisual         LearningStyle = "Visual"
	StyleAuditory       LearningStyle = "Auditory"
	StyleReadingWriting LearningStyle = "Reading/Writing"
	StyleKinesthetic    LearningStyle = "Kinesthetic"
)

// LearningStyles returns the enumeration in display order.
func LearningStyles() []LearningStyle {
	return []LearningStyle{StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic}
}

// Valid reports whether s is part of the enumeration.
func (s LearningStyle) Valid() bool {
	switch s {
	case StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic:
		return true
	}
	return false
}
