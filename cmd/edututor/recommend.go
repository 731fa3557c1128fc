package main

import (
	"github.com/spf13/cobra"

	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

func newRecommendCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <vector-file>",
		Short: "Plan recommendations for a performance vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vector, err := readVector(args[0])
			if err != nil {
				return err
			}
			style, _ := cmd.Flags().GetString("style")
			completed, _ := cmd.Flags().GetInt("completed")

			report, err := env.engine().Recommend(cmd.Context(), app.RecommendRequest{
				Vector:               vector,
				LearningStyle:        model.LearningStyle(style),
				CompletedAssessments: completed,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, report)
		},
	}
	cmd.Flags().String("style", string(model.StyleVisual), "Learning style: Visual, Auditory, Reading/Writing or Kinesthetic")
	cmd.Flags().Int("completed", 0, "Number of assessments the student has completed")
	addOutputFlag(cmd)
	return cmd
}
