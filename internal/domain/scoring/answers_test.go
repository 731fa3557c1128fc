package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/internal/domain/scoring"
)

func quizQuestions() []model.Question {
	return []model.Question{
		{ID: "q1", Kind: model.QuestionMultipleChoice, Answers: []string{"B"}},
		{ID: "q2", Kind: model.QuestionTrueFalse, Answers: []string{"true"}},
		{ID: "q3", Kind: model.QuestionShortAnswer, Answers: []string{"photosynthesis"}},
		{ID: "q4", Kind: model.QuestionNumeric, Answers: []string{"2.75"}, Tolerance: 0.01},
	}
}

func quizRubric(questions ...model.Question) model.Rubric {
	return model.Rubric{
		ID:      "quiz-1",
		Subject: model.Science,
		Criteria: []model.Criterion{{
			Name:      "Quiz",
			Weight:    1,
			MaxPoints: 10,
			Heuristic: model.HeuristicAnswerKey,
			Questions: questions,
		}},
	}
}

func answers(kv map[string]string) model.Submission {
	sub := submission("")
	sub.Answers = kv
	return sub
}

func TestRubricScorer_AnswerKey(t *testing.T) {
	Convey("Given a quiz rubric with one question of each kind", t, func() {
		scorer := scoring.NewRubricScorer()
		rubric := quizRubric(quizQuestions()...)

		Convey("When every answer is correct in a loose form", func() {
			res, err := scorer.Score(answers(map[string]string{
				"q1": " b ", "q2": "Yes", "q3": "Photosynthesis.", "q4": "2.751 m",
			}), rubric)

			Convey("Then full credit is given without any text", func() {
				So(err, ShouldBeNil)
				So(res.Total, ShouldEqual, 100)
				So(res.Criteria[0].Band, ShouldEqual, model.BandProficient)
				So(res.Criteria[0].Questions, ShouldHaveLength, 4)
				for _, q := range res.Criteria[0].Questions {
					So(q.Correct, ShouldBeTrue)
				}
				So(res.Criteria[0].Feedback, ShouldNotContainSubstring, "Review questions")
			})
		})

		Convey("When answers are wrong, close or missing", func() {
			res, err := scorer.Score(answers(map[string]string{
				"q1": "C", "q2": "true", "q3": "photosynthesys",
			}), rubric)

			Convey("Then each question is credited on its own", func() {
				So(err, ShouldBeNil)
				qs := res.Criteria[0].Questions
				So(qs[0], ShouldResemble, model.QuestionResult{ID: "q1", Answered: true})
				So(qs[1], ShouldResemble, model.QuestionResult{ID: "q2", Answered: true, Correct: true, Credit: 1})
				So(qs[2], ShouldResemble, model.QuestionResult{ID: "q3", Answered: true, Credit: 0.5})
				So(qs[3], ShouldResemble, model.QuestionResult{ID: "q4"})
			})

			Convey("Then the criterion is the mean credit and feedback lists the misses", func() {
				So(res.Criteria[0].Points, ShouldEqual, 3.75)
				So(res.Total, ShouldEqual, 37.5)
				So(res.Criteria[0].Band, ShouldEqual, model.BandNeedsRevision)
				So(res.Criteria[0].Feedback, ShouldEndWith, "Review questions: q1, q3, q4.")
				So(res.OverallFeedback, ShouldStartWith, scoring.LeadReview)
			})
		})

		Convey("When a short answer key is too short for a fuzzy match", func() {
			r := quizRubric(model.Question{ID: "s", Kind: model.QuestionShortAnswer, Answers: []string{"cat"}})
			res, err := scorer.Score(answers(map[string]string{"s": "cap"}), r)

			Convey("Then it earns nothing", func() {
				So(err, ShouldBeNil)
				So(res.Total, ShouldEqual, 0)
			})
		})

		Convey("When a numeric answer is outside the tolerance or not a number", func() {
			for _, resp := range []string{"2.8", "two", "NaN"} {
				res, err := scorer.Score(answers(map[string]string{"q4": resp}), quizRubric(quizQuestions()[3]))
				So(err, ShouldBeNil)
				So(res.Criteria[0].Questions[0].Correct, ShouldBeFalse)
			}
		})

		Convey("When the submission has neither text nor answers", func() {
			_, err := scorer.Score(answers(map[string]string{"q1": "  "}), rubric)

			Convey("Then it is empty", func() {
				So(err, ShouldWrap, scoring.ErrEmptySubmission)
			})
		})

		Convey("When a text rubric receives only answers", func() {
			res, err := scorer.Score(answers(map[string]string{"q1": "B"}), keywordRubric("chlorophyll"))

			Convey("Then the text criteria score zero", func() {
				So(err, ShouldBeNil)
				So(res.Total, ShouldEqual, 0)
			})
		})
	})
}

func TestValidateRubric_Questions(t *testing.T) {
	Convey("Given answer-key rubrics", t, func() {
		So(scoring.ValidateRubric(ptr(quizRubric(quizQuestions()...))), ShouldBeNil)

		Convey("When the questions are malformed", func() {
			mutate := func(mut func(*model.Question)) model.Rubric {
				qs := quizQuestions()
				mut(&qs[0])
				return quizRubric(qs...)
			}
			cases := map[string]model.Rubric{
				"no questions":       quizRubric(),
				"blank id":           mutate(func(q *model.Question) { q.ID = " " }),
				"padded id":          mutate(func(q *model.Question) { q.ID = "q1 " }),
				"duplicate id":       mutate(func(q *model.Question) { q.ID = "q2" }),
				"unknown kind":       mutate(func(q *model.Question) { q.Kind = "essay" }),
				"no answers":         mutate(func(q *model.Question) { q.Answers = nil }),
				"blank answer":       mutate(func(q *model.Question) { q.Answers = []string{"?"} }),
				"not a boolean":      mutate(func(q *model.Question) { q.Kind = model.QuestionTrueFalse }),
				"not a number":       mutate(func(q *model.Question) { q.Kind = model.QuestionNumeric }),
				"negative tolerance": mutate(func(q *model.Question) { q.Tolerance = -1 }),
			}

			Convey("Then each should wrap ErrInvalidRubric", func() {
				for _, r := range cases {
					So(scoring.ValidateRubric(&r), ShouldWrap, scoring.ErrInvalidRubric)
				}
			})
		})
	})
}

func ptr(r model.Rubric) *model.Rubric {
	return &r
}
