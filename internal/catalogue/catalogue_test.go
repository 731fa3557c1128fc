package catalogue_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vinay2231/Edututor-AI/internal/catalogue"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

func TestDefaultCatalogue(t *testing.T) {
	Convey("Given the embedded catalogue", t, func() {
		c, err := catalogue.Default()
		So(err, ShouldBeNil)

		Convey("Then every canonical subject has a module per tier", func() {
			for _, s := range model.CanonicalSubjects() {
				for _, tier := range []model.Tier{model.TierBeginner, model.TierIntermediate, model.TierAdvanced} {
					m, ok := c.Module(s, tier)
					So(ok, ShouldBeTrue)
					So(m.Title, ShouldNotBeEmpty)
				}
			}
			m, _ := c.Module(model.Math, model.TierBeginner)
			So(m.Title, ShouldEqual, "Foundational Algebra")
			So(c.Modules(), ShouldHaveLength, 12)
		})

		Convey("Then each canonical subject has an enrichment challenge", func() {
			So(c.Challenges(), ShouldHaveLength, 4)
			So(c.Challenges()[0].Title, ShouldEqual, "Research Project")
		})

		Convey("Then returned slices are copies", func() {
			ch := c.Challenges()
			ch[0].Title = "changed"
			So(c.Challenges()[0].Title, ShouldEqual, "Research Project")
		})
	})
}

func TestParseCatalogue(t *testing.T) {
	Convey("Given catalogue YAML", t, func() {
		Convey("When a tier is unknown", func() {
			_, err := catalogue.Parse([]byte("modules:\n  - subject: Math\n    tier: Expert\n    title: X\n"))
			So(err, ShouldWrap, catalogue.ErrInvalidCatalogue)
		})

		Convey("When a module is duplicated", func() {
			data := "modules:\n" +
				"  - {subject: Math, tier: Beginner, title: A}\n" +
				"  - {subject: Math, tier: Beginner, title: B}\n"
			_, err := catalogue.Parse([]byte(data))
			So(err, ShouldWrap, catalogue.ErrInvalidCatalogue)
		})

		Convey("When the YAML is malformed", func() {
			_, err := catalogue.Parse([]byte("modules: [:"))
			So(err, ShouldWrap, catalogue.ErrInvalidCatalogue)
		})

		Convey("When loading an override file", func() {
			path := filepath.Join(t.TempDir(), "catalogue.yaml")
			So(os.WriteFile(path, []byte("modules:\n  - {subject: Art, tier: Advanced, title: Studio Practice}\n"), 0o600), ShouldBeNil)
			c, err := catalogue.Load(path)

			So(err, ShouldBeNil)
			m, ok := c.Module("Art", model.TierAdvanced)
			So(ok, ShouldBeTrue)
			So(m.Title, ShouldEqual, "Studio Practice")
			So(c.Challenges(), ShouldBeEmpty)
		})

		Convey("When the override file is missing", func() {
			_, err := catalogue.Load(filepath.Join(t.TempDir(), "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRubricStore(t *testing.T) {
	Convey("Given the embedded rubrics", t, func() {
		store, err := catalogue.DefaultRubrics()
		So(err, ShouldBeNil)

		Convey("Then the default essay rubric is published", func() {
			r, err := store.Rubric("essay-default")
			So(err, ShouldBeNil)
			So(r.Subject, ShouldEqual, model.LanguageArts)
			So(r.WordRange, ShouldResemble, model.WordRange{Min: 500, Max: 1000})
			So(r.TotalWeight(), ShouldAlmostEqual, 1, 1e-6)
			So(store.IDs(), ShouldContain, "science-lab-report")
		})

		Convey("Then rubrics cannot be changed through a returned copy", func() {
			r, _ := store.Rubric("essay-default")
			r.Criteria[0].Name = "changed"
			r.Criteria[0].Signals[0] = "changed"
			again, _ := store.Rubric("essay-default")
			So(again.Criteria[0].Name, ShouldEqual, "Thesis Statement")
			So(again.Criteria[0].Signals[0], ShouldEqual, "argue")
		})

		Convey("Then the quiz rubric carries its answer key", func() {
			r, err := store.Rubric("math-quiz")
			So(err, ShouldBeNil)
			So(r.Criteria[0].Heuristic, ShouldEqual, model.HeuristicAnswerKey)
			So(r.Criteria[0].Questions, ShouldHaveLength, 4)
			So(r.Criteria[0].Questions[1].Answers, ShouldResemble, []string{"false"})
			So(r.Criteria[0].Questions[3].Tolerance, ShouldEqual, 0.01)

			r.Criteria[0].Questions[0].Answers[0] = "changed"
			again, _ := store.Rubric("math-quiz")
			So(again.Criteria[0].Questions[0].Answers[0], ShouldEqual, "B")
		})

		Convey("Then unknown ids are reported", func() {
			_, err := store.Rubric("nope")
			So(err, ShouldWrap, catalogue.ErrRubricNotFound)
		})
	})

	Convey("Given a rubric file with bad weights", t, func() {
		data := "rubrics:\n  - id: bad\n    criteria:\n      - {name: A, weight: 0.5, max_points: 10}\n"
		_, err := catalogue.ParseRubrics([]byte(data))
		So(err, ShouldWrap, catalogue.ErrInvalidCatalogue)
	})
}
