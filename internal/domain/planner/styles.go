package planner

import (
	"fmt"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// rationaleTemplates take the subject and the activity being recommended.
var rationaleTemplates = map[model.LearningStyle]string{
	model.StyleVisual:         "Map the key ideas of %s into diagrams and charts as you work through this %s.",
	model.StyleAuditory:       "Talk through %s concepts aloud or in a study group as you work through this %s.",
	model.StyleReadingWriting: "Summarise each %s lesson in your own words as you work through this %s.",
	model.StyleKinesthetic:    "Practise %s with hands-on activities and real-world examples as you work through this %s.",
}

func rationale(style model.LearningStyle, subject model.Subject, activity string) string {
	return fmt.Sprintf(rationaleTemplates[style], subject, activity)
}

// StyleProfile describes a learning style with study tips.
type StyleProfile struct {
	Style       model.LearningStyle `json:"style"`
	Description string              `json:"description"`
	Tips        []string            `json:"tips"`
}

var styleProfiles = map[model.LearningStyle]StyleProfile{
	model.StyleVisual: {
		Description: "You learn best through visual aids like charts, graphs, and images.",
		Tips: []string{
			"Use color-coding in your notes",
			"Create mind maps for complex topics",
			"Watch video tutorials when available",
			"Convert text information into diagrams",
		},
	},
	model.StyleAuditory: {
		Description: "You learn best through listening, discussions, and verbal explanations.",
		Tips: []string{
			"Record lessons and listen to them again",
			"Join study discussions with classmates",
			"Explain concepts out loud to yourself",
			"Use rhythm or music to remember facts",
		},
	},
	model.StyleReadingWriting: {
		Description: "You learn best through text-based materials and writing.",
		Tips: []string{
			"Take detailed notes in your own words",
			"Rewrite key concepts to reinforce them",
			"Write summaries after each study session",
			"Use flashcards with written definitions",
		},
	},
	model.StyleKinesthetic: {
		Description: "You learn best through hands-on activities and physical experiences.",
		Tips: []string{
			"Incorporate movement while studying",
			"Build models or use demonstrations",
			"Take short active breaks between sessions",
			"Relate concepts to real-world scenarios",
		},
	},
}

// Profile returns the description and study tips for style.
func Profile(style model.LearningStyle) (StyleProfile, error) {
	p, ok := styleProfiles[style]
	if !ok {
		return StyleProfile{}, fmt.Errorf("%w: %q", ErrUnknownLearningStyle, style)
	}
	p.Style = style
	p.Tips = append([]string(nil), p.Tips...)
	return p, nil
}
