package scoring

import (
	"fmt"
	"strings"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Overall feedback leads.
const (
	LeadExcellent = "Excellent understanding of core concepts"
	LeadGood      = "Good grasp of fundamentals"
	LeadReview    = "Core concept review recommended"
)

var templates = map[model.Heuristic]map[model.Band]string{
	model.HeuristicKeywords: {
		model.BandProficient:    "%s: the response covers the key ideas this criterion looks for.",
		model.BandDeveloping:    "%s: some key ideas are present but coverage is incomplete.",
		model.BandNeedsRevision: "%s: most of the key ideas are missing; revisit the core concepts.",
	},
	model.HeuristicStructure: {
		model.BandProficient:    "%s: well organised with clear paragraphs and a conclusion.",
		model.BandDeveloping:    "%s: the organisation is understandable; separate ideas into paragraphs and close with a conclusion.",
		model.BandNeedsRevision: "%s: the response needs an introduction, body paragraphs and a clear conclusion.",
	},
	model.HeuristicLength: {
		model.BandProficient:    "%s: the length fits the assignment.",
		model.BandDeveloping:    "%s: the length is somewhat off target; adjust the level of detail.",
		model.BandNeedsRevision: "%s: the length is far from the target for this assignment.",
	},
	model.HeuristicArgument: {
		model.BandProficient:    "%s: reasoning is explicit and ideas are well connected.",
		model.BandDeveloping:    "%s: some reasoning is present; explain why each point follows.",
		model.BandNeedsRevision: "%s: claims are stated without reasoning; connect ideas with because, therefore or however.",
	},
	model.HeuristicEvidence: {
		model.BandProficient:    "%s: claims are supported with concrete evidence.",
		model.BandDeveloping:    "%s: some support is given; add specific examples, data or quotations.",
		model.BandNeedsRevision: "%s: claims lack supporting evidence.",
	},
	model.HeuristicMechanics: {
		model.BandProficient:    "%s: sentences are clear and well formed.",
		model.BandDeveloping:    "%s: check capitalisation and keep sentences to a readable length.",
		model.BandNeedsRevision: "%s: sentence mechanics need significant attention.",
	},
	model.HeuristicAnswerKey: {
		model.BandProficient:    "%s: most answers are correct.",
		model.BandDeveloping:    "%s: several answers are correct; review the ones that were not.",
		model.BandNeedsRevision: "%s: most answers are incorrect or missing; revisit the material before retrying.",
	},
}

func criterionFeedback(c *model.Criterion, band model.Band, a assessment) string {
	byBand, ok := templates[c.Heuristic]
	if !ok {
		byBand = templates[model.HeuristicKeywords]
	}
	msg := fmt.Sprintf(byBand[band], c.Name)
	if band != model.BandProficient && len(a.missing) > 0 {
		msg += " Consider addressing: " + strings.Join(a.missing, ", ") + "."
	}
	if len(a.wrong) > 0 {
		msg += " Review questions: " + strings.Join(a.wrong, ", ") + "."
	}
	return msg
}

func overallFeedback(total float64, criteria []model.CriterionScore, violation bool, words int, wr model.WordRange) string {
	var b strings.Builder
	switch {
	case total >= excellentTotal:
		b.WriteString(LeadExcellent)
	case total >= goodTotal:
		b.WriteString(LeadGood)
	default:
		b.WriteString(LeadReview)
	}
	b.WriteString(".")

	if len(criteria) > 1 {
		strongest, weakest := criteria[0], criteria[0]
		for _, cs := range criteria[1:] {
			if ratio(cs) > ratio(strongest) {
				strongest = cs
			}
			if ratio(cs) < ratio(weakest) {
				weakest = cs
			}
		}
		if strongest.Criterion != weakest.Criterion {
			fmt.Fprintf(&b, " Strongest area: %s. Focus next on: %s.", strongest.Criterion, weakest.Criterion)
		}
	}

	if violation {
		fmt.Fprintf(&b, " Length note: the response has %d words; %s.", words, describeRange(wr))
	}
	return b.String()
}

func ratio(cs model.CriterionScore) float64 {
	if cs.MaxPoints <= 0 {
		return 0
	}
	return cs.Points / cs.MaxPoints
}

func describeRange(wr model.WordRange) string {
	if wr.Max == 0 {
		return fmt.Sprintf("the assignment expects at least %d words", wr.Min)
	}
	if wr.Min == 0 {
		return fmt.Sprintf("the assignment expects at most %d words", wr.Max)
	}
	return fmt.Sprintf("the assignment expects between %d and %d words", wr.Min, wr.Max)
}
