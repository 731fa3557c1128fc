package scoring

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Heuristic tuning constants.
const (
	keywordSaturation   = 0.8 // share of terms that earns full credit
	diversityTarget     = 0.6 // unique/total word ratio that earns full credit
	paragraphTarget     = 3
	sentenceTarget      = 5
	argumentSaturation  = 4
	evidenceSaturation  = 3
	readableMinWords    = 8
	readableMaxWords    = 30
	maxMissingTermsList = 3
)

var conclusionMarkers = []string{
	"in conclusion", "to conclude", "to summarize", "in summary", "overall", "ultimately", "finally",
}

var argumentMarkers = []string{
	"because", "therefore", "however", "thus", "hence", "consequently", "furthermore", "moreover",
	"although", "whereas", "on the other hand", "as a result", "in addition", "for this reason",
	"in contrast", "this shows",
}

var evidenceMarkers = []string{
	"for example", "for instance", "according to", "such as", "research", "study", "studies",
	"data", "evidence", "statistics", "survey", "percent",
}

// assessment is a heuristic outcome: a fraction in [0,1] plus optional
// detail used by the feedback templates.
type assessment struct {
	fraction  float64
	missing   []string
	questions []model.QuestionResult
	wrong     []string // question ids without full credit
}

func (s *RubricScorer) assess(doc *document, c *model.Criterion, wr model.WordRange) assessment {
	switch c.Heuristic {
	case model.HeuristicStructure:
		return assessment{fraction: structureFraction(doc)}
	case model.HeuristicLength:
		return assessment{fraction: lengthFraction(doc.wordCount, wr)}
	case model.HeuristicArgument:
		return assessment{fraction: saturate(doc.countMarkers(argumentMarkers), argumentSaturation)}
	case model.HeuristicEvidence:
		return assessment{fraction: evidenceFraction(doc)}
	case model.HeuristicMechanics:
		return assessment{fraction: mechanicsFraction(doc)}
	case model.HeuristicAnswerKey:
		return answerKeyAssessment(doc.answers, c)
	default:
		return keywordAssessment(doc, c)
	}
}

func keywordAssessment(doc *document, c *model.Criterion) assessment {
	terms := c.Signals
	if len(terms) == 0 {
		terms = descriptionTerms(c.Description)
	}
	if len(terms) == 0 {
		if len(doc.tokens) == 0 {
			return assessment{}
		}
		diversity := float64(doc.unique) / float64(len(doc.tokens))
		return assessment{fraction: clamp01(diversity / diversityTarget)}
	}

	hits := 0
	var missing []string
	for _, t := range terms {
		if doc.contains(t) {
			hits++
			continue
		}
		if len(missing) < maxMissingTermsList {
			missing = append(missing, t)
		}
	}
	need := math.Max(1, keywordSaturation*float64(len(terms)))
	return assessment{fraction: clamp01(float64(hits) / need), missing: missing}
}

func structureFraction(doc *document) float64 {
	paras := saturate(doc.paragraphs, paragraphTarget)
	sents := saturate(len(doc.sentences), sentenceTarget)
	concl := 0.0
	if doc.countMarkers(conclusionMarkers) > 0 {
		concl = 1
	}
	return clamp01(0.4*paras + 0.3*sents + 0.3*concl)
}

func lengthFraction(words int, wr model.WordRange) float64 {
	switch {
	case words <= 0:
		return 0
	case words < wr.Min:
		return float64(words) / float64(wr.Min)
	case wr.Max > 0 && words > wr.Max:
		return float64(wr.Max) / float64(words)
	default:
		return 1
	}
}

func evidenceFraction(doc *document) float64 {
	hits := doc.countMarkers(evidenceMarkers)
	if doc.hasNumber() {
		hits++
	}
	if doc.hasQuotation() {
		hits++
	}
	return saturate(hits, evidenceSaturation)
}

func mechanicsFraction(doc *document) float64 {
	if len(doc.sentences) == 0 {
		return 0
	}
	capitalised := 0
	for _, sentence := range doc.sentences {
		r, _ := utf8.DecodeRuneInString(sentence)
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalised++
		}
	}
	capRatio := float64(capitalised) / float64(len(doc.sentences))

	avg := float64(len(doc.tokens)) / float64(len(doc.sentences))
	var lenScore float64
	switch {
	case avg < readableMinWords:
		lenScore = avg / readableMinWords
	case avg > readableMaxWords:
		lenScore = readableMaxWords / avg
	default:
		lenScore = 1
	}
	return clamp01(0.5*capRatio + 0.5*lenScore)
}

func saturate(n, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return clamp01(float64(n) / float64(limit))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
