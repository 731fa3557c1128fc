package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

func newGradeCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade [file]",
		Short: "Grade one response against a rubric",
		Long:  "Grade reads the response text from file, or from stdin when neither a file nor --answer is given, and prints the score and the updated performance vector.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rubricID, _ := cmd.Flags().GetString("rubric")
			rubric, err := env.rubrics.Rubric(rubricID)
			if err != nil {
				return err
			}

			answers, _ := cmd.Flags().GetStringToString("answer")
			var text string
			if len(args) == 1 || len(answers) == 0 {
				if text, err = readText(cmd, args); err != nil {
					return err
				}
			}
			vectorPath, _ := cmd.Flags().GetString("vector")
			vector, err := readVector(vectorPath)
			if err != nil {
				return err
			}

			student, _ := cmd.Flags().GetString("student")
			assessment, _ := cmd.Flags().GetString("assessment")
			id, _ := cmd.Flags().GetString("id")
			out, err := env.engine().GradeSubmission(cmd.Context(), app.GradeRequest{
				Submission: model.Submission{
					ID:           id,
					StudentID:    student,
					AssessmentID: assessment,
					Text:         text,
					Answers:      answers,
					SubmittedAt:  time.Now().UTC(),
				},
				Rubric: rubric,
				Vector: vector,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, out)
		},
	}
	cmd.Flags().String("rubric", "essay-default", "Rubric id")
	cmd.Flags().String("student", "", "Student id")
	cmd.Flags().String("assessment", "", "Assessment id")
	cmd.Flags().String("id", "", "Submission id; derived when empty")
	cmd.Flags().String("vector", "", "YAML file with the student's current subject scores")
	cmd.Flags().StringToString("answer", nil, "Structured answer as question=answer; repeatable")
	addOutputFlag(cmd)
	return cmd
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(data), nil
}
