package main

import (
	"github.com/spf13/cobra"
)

type validateReport struct {
	Modules    int      `json:"modules" yaml:"modules"`
	Challenges int      `json:"challenges" yaml:"challenges"`
	Rubrics    []string `json:"rubrics" yaml:"rubrics"`
}

func newValidateCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the module catalogue and rubrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOutput(cmd, validateReport{
				Modules:    len(env.catalogue.Modules()),
				Challenges: len(env.catalogue.Challenges()),
				Rubrics:    env.rubrics.IDs(),
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}
