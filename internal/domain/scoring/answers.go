package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

// Answer matching constants.
const (
	fuzzyCredit   = 0.5 // short answer one edit away from an accepted answer
	fuzzyMaxEdit  = 1
	fuzzyMinRunes = 4 // shorter answers must match exactly
)

// answerKeyAssessment grades every question of c against the structured
// answers. The fraction is the mean credit; unanswered questions earn none.
func answerKeyAssessment(answers map[string]string, c *model.Criterion) assessment {
	if len(c.Questions) == 0 {
		return assessment{}
	}
	results := make([]model.QuestionResult, 0, len(c.Questions))
	credit := 0.0
	var wrong []string
	for i := range c.Questions {
		q := &c.Questions[i]
		resp, ok := answers[q.ID]
		qr := model.QuestionResult{ID: q.ID, Answered: ok && strings.TrimSpace(resp) != ""}
		if qr.Answered {
			qr.Credit = questionCredit(q, resp)
			qr.Correct = qr.Credit == 1
		}
		if !qr.Correct {
			wrong = append(wrong, q.ID)
		}
		credit += qr.Credit
		results = append(results, qr)
	}
	return assessment{
		fraction:  clamp01(credit / float64(len(c.Questions))),
		questions: results,
		wrong:     wrong,
	}
}

func questionCredit(q *model.Question, resp string) float64 {
	switch q.Kind {
	case model.QuestionTrueFalse:
		got, ok := parseBool(resp)
		if !ok {
			return 0
		}
		for _, a := range q.Answers {
			if want, ok := parseBool(a); ok && want == got {
				return 1
			}
		}
		return 0
	case model.QuestionNumeric:
		got, ok := parseNumber(resp)
		if !ok {
			return 0
		}
		for _, a := range q.Answers {
			if want, ok := parseNumber(a); ok && math.Abs(got-want) <= q.Tolerance {
				return 1
			}
		}
		return 0
	case model.QuestionShortAnswer:
		norm := normalizeAnswer(resp)
		best := 0.0
		for _, a := range q.Answers {
			key := normalizeAnswer(a)
			if key == norm {
				return 1
			}
			if utf8.RuneCountInString(key) >= fuzzyMinRunes && levenshtein(key, norm) <= fuzzyMaxEdit {
				best = fuzzyCredit
			}
		}
		return best
	default:
		norm := normalizeAnswer(resp)
		for _, a := range q.Answers {
			if normalizeAnswer(a) == norm {
				return 1
			}
		}
		return 0
	}
}

func validateQuestions(c *model.Criterion, name string, seen map[string]struct{}) error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("%w: criterion %q has no questions", ErrInvalidRubric, name)
	}
	for i := range c.Questions {
		q := &c.Questions[i]
		id := strings.TrimSpace(q.ID)
		switch {
		case id == "" || id != q.ID:
			return fmt.Errorf("%w: criterion %q question %d has a blank or padded id", ErrInvalidRubric, name, i)
		case !q.Kind.Valid():
			return fmt.Errorf("%w: question %q kind %q", ErrInvalidRubric, id, q.Kind)
		case len(q.Answers) == 0:
			return fmt.Errorf("%w: question %q has no accepted answers", ErrInvalidRubric, id)
		case !finite(q.Tolerance) || q.Tolerance < 0:
			return fmt.Errorf("%w: question %q tolerance %v", ErrInvalidRubric, id, q.Tolerance)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate question %q", ErrInvalidRubric, id)
		}
		seen[id] = struct{}{}
		for _, a := range q.Answers {
			if err := validateAnswer(q, a); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateAnswer(q *model.Question, a string) error {
	var ok bool
	switch q.Kind {
	case model.QuestionTrueFalse:
		_, ok = parseBool(a)
	case model.QuestionNumeric:
		_, ok = parseNumber(a)
	default:
		ok = normalizeAnswer(a) != ""
	}
	if !ok {
		return fmt.Errorf("%w: question %q answer %q does not fit kind %s", ErrInvalidRubric, q.ID, a, q.Kind)
	}
	return nil
}

func parseBool(s string) (bool, bool) {
	switch normalizeAnswer(s) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}

// parseNumber reads the leading number of s, so "12 cm" parses as 12.
func parseNumber(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], ","), 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

// normalizeAnswer lower-cases s, drops punctuation and collapses spaces.
func normalizeAnswer(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r):
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// levenshtein is the edit distance between a and b with unit costs.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, prev+cost)
			prev, row[j] = row[j], next
		}
	}
	return row[len(br)]
}
