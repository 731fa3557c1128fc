package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/catalogue"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/internal/domain/planner"
)

const testRubrics = `
rubrics:
  - id: bio-1
    title: Photosynthesis
    subject: Science
    criteria:
      - name: Concepts
        weight: 1
        max_points: 10
        heuristic: keywords
        signals: [chlorophyll, sunlight]
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"EDUTUTOR_CONFIG", "EDUTUTOR_CATALOGUE_PATH", "EDUTUTOR_RUBRICS_PATH", "EDUTUTOR_LOG_LEVEL", "EDUTUTOR_LOG_FORMAT"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	convey.Convey("Given the embedded catalogue and rubrics", t, func() {
		convey.Convey("When validate runs", func() {
			out, err := run(t, "", "validate")

			convey.Convey("Then it summarises the data in YAML", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "modules: 12")
				convey.So(out, convey.ShouldContainSubstring, "challenges: 4")
				convey.So(out, convey.ShouldContainSubstring, "- essay-default")
			})
		})

		convey.Convey("When the rubric override is invalid", func() {
			path := writeFile(t, "rubrics.yaml", "rubrics:\n  - id: bad\n    criteria:\n      - name: A\n        weight: 0.4\n        max_points: 10\n")
			_, err := run(t, "", "validate", "--rubrics", path)

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldWrap, catalogue.ErrInvalidCatalogue)
			})
		})
	})
}

func TestGradeCommand(t *testing.T) {
	convey.Convey("Given a rubric file and a vector file", t, func() {
		rubrics := writeFile(t, "rubrics.yaml", testRubrics)
		vector := writeFile(t, "vector.yaml", "Math: 62\nScience: 40\n")

		convey.Convey("When a response is piped in", func() {
			out, err := run(t, "Chlorophyll captures sunlight.",
				"grade", "--rubrics", rubrics, "--rubric", "bio-1",
				"--student", "stu-1", "--id", "sub-1", "--vector", vector, "-o", "json")

			convey.Convey("Then the outcome is printed as JSON", func() {
				convey.So(err, convey.ShouldBeNil)
				var got app.GradeOutcome
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got.Result.SubmissionID, convey.ShouldEqual, "sub-1")
				convey.So(got.Result.Total, convey.ShouldEqual, 100)
				convey.So(got.Vector, convey.ShouldResemble, model.PerformanceVector{model.Math: 62, model.Science: 100})
			})
		})

		convey.Convey("When the response is read from a file as YAML", func() {
			answer := writeFile(t, "answer.txt", "Sunlight matters.")
			out, err := run(t, "", "grade", answer, "--rubrics", rubrics, "--rubric", "bio-1", "--student", "stu-1")

			convey.Convey("Then YAML uses the same field names", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "submission_id:")
				convey.So(out, convey.ShouldContainSubstring, "total: 62.5")
			})
		})

		convey.Convey("When quiz answers are given as flags", func() {
			out, err := run(t, "", "grade", "--rubric", "math-quiz", "--student", "stu-1",
				"--answer", "q1=b", "--answer", "q2=False", "--answer", "q3=elimination", "--answer", "q4=2.75", "-o", "json")

			convey.Convey("Then the embedded quiz is graded without response text", func() {
				convey.So(err, convey.ShouldBeNil)
				var got app.GradeOutcome
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got.Result.Criteria[0].Points, convey.ShouldEqual, 20)
				convey.So(len(got.Result.Criteria[0].Questions), convey.ShouldEqual, 4)
				convey.So(got.Result.Total, convey.ShouldEqual, 80)
				convey.So(got.Vector, convey.ShouldResemble, model.PerformanceVector{model.Math: 80})
			})
		})

		convey.Convey("When the rubric does not exist", func() {
			_, err := run(t, "text", "grade", "--rubrics", rubrics, "--rubric", "nope")

			convey.Convey("Then ErrRubricNotFound is returned", func() {
				convey.So(err, convey.ShouldWrap, catalogue.ErrRubricNotFound)
			})
		})
	})
}

func TestRecommendCommand(t *testing.T) {
	convey.Convey("Given a vector weak in math", t, func() {
		vector := writeFile(t, "vector.yaml", "Math: 45\nScience: 82\nLanguage Arts: 71\nHistory: 88\n")

		convey.Convey("When recommend runs", func() {
			out, err := run(t, "", "recommend", vector, "--style", "Reading/Writing", "--completed", "6", "-o", "json")

			convey.Convey("Then the remediation module comes first", func() {
				convey.So(err, convey.ShouldBeNil)
				var report app.Report
				convey.So(json.Unmarshal([]byte(out), &report), convey.ShouldBeNil)
				convey.So(report.Recommendations[0].ModuleTitle, convey.ShouldEqual, "Foundational Algebra")
				convey.So(report.StyleProfile.Style, convey.ShouldEqual, model.StyleReadingWriting)
			})
		})

		convey.Convey("When a score in the file is infinite", func() {
			inf := writeFile(t, "inf.yaml", "Math: .inf\nScience: -.inf\n")
			jsonOut, jsonErr := run(t, "", "recommend", inf, "-o", "json")
			yamlOut, yamlErr := run(t, "", "recommend", inf)

			convey.Convey("Then both encodings succeed with a null original", func() {
				convey.So(jsonErr, convey.ShouldBeNil)
				convey.So(jsonOut, convey.ShouldContainSubstring, `"original": null`)
				convey.So(yamlErr, convey.ShouldBeNil)
				convey.So(yamlOut, convey.ShouldContainSubstring, "reason: above_range")
				convey.So(yamlOut, convey.ShouldContainSubstring, "original: null")
			})
		})

		convey.Convey("When the style is unknown", func() {
			_, err := run(t, "", "recommend", vector, "--style", "Osmosis")

			convey.Convey("Then ErrUnknownLearningStyle is returned", func() {
				convey.So(err, convey.ShouldWrap, planner.ErrUnknownLearningStyle)
			})
		})
	})
}

func TestBatchCommand(t *testing.T) {
	convey.Convey("Given a jobs file", t, func() {
		rubrics := writeFile(t, "rubrics.yaml", testRubrics)
		jobs := writeFile(t, "jobs.yaml", `
jobs:
  - rubric_id: bio-1
    submission:
      id: a1
      student_id: stu-1
      text: Chlorophyll absorbs sunlight.
  - rubric_id: bio-1
    submission:
      id: b1
      student_id: stu-2
      text: Plants are green.
  - rubric_id: unknown
    submission:
      id: c1
      student_id: stu-3
      text: Chlorophyll.
`)

		convey.Convey("When batch runs", func() {
			out, err := run(t, "", "batch", jobs, "--rubrics", rubrics, "-o", "json")

			convey.Convey("Then stats, students and the class overview are reported", func() {
				convey.So(err, convey.ShouldBeNil)
				var report batchReport
				convey.So(json.Unmarshal([]byte(out), &report), convey.ShouldBeNil)
				convey.So(report.Stats.Processed, convey.ShouldEqual, 3)
				convey.So(report.Stats.Failed, convey.ShouldEqual, 1)
				convey.So(len(report.Students), convey.ShouldEqual, 2)
				convey.So(report.Students[0].StudentID, convey.ShouldEqual, "stu-1")
				convey.So(report.Students[0].Vector[model.Science], convey.ShouldEqual, 100)
				convey.So(report.Overview.AtRisk, convey.ShouldResemble, []string{"stu-2"})
			})
		})
	})
}
