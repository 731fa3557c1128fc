package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/catalogue"
	"github.com/vinay2231/Edututor-AI/internal/config"
	"github.com/vinay2231/Edututor-AI/pkg/logger"
)

// runtimeEnv is what every subcommand needs after the root has loaded
// configuration.
type runtimeEnv struct {
	cfg       *config.Config
	log       logger.Logger
	catalogue *catalogue.Catalogue
	rubrics   *catalogue.RubricStore
}

func newRootCmd() *cobra.Command {
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:           "edututor",
		Short:         "Assessment and feedback engine",
		Long:          "edututor grades student responses against rubrics, evaluates mastery and plans learning recommendations.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.load(cmd)
		},
	}

	root.PersistentFlags().String("catalogue", "", "Path to a module catalogue YAML file (overrides catalogue_path)")
	root.PersistentFlags().String("rubrics", "", "Path to a rubric YAML file (overrides rubrics_path)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log_level)")

	root.AddCommand(newValidateCmd(env))
	root.AddCommand(newGradeCmd(env))
	root.AddCommand(newRecommendCmd(env))
	root.AddCommand(newBatchCmd(env))
	root.AddCommand(newServeCmd(env))
	return root
}

// load resolves configuration (defaults, file, env, then flags), initialises
// logging and loads the catalogue and rubrics.
func (e *runtimeEnv) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("catalogue"); p != "" {
		cfg.CataloguePath = p
	}
	if p, _ := cmd.Flags().GetString("rubrics"); p != "" {
		cfg.RubricsPath = p
	}
	if lv, _ := cmd.Flags().GetString("log-level"); lv != "" {
		cfg.LogLevel = lv
	}

	if err := logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(cfg.LogLevel),
		logger.WithWriter(cmd.ErrOrStderr()),
	); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	cat, err := catalogue.Load(cfg.CataloguePath)
	if err != nil {
		return err
	}
	rubrics, err := catalogue.LoadRubrics(cfg.RubricsPath)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.log = logger.Get()
	e.catalogue = cat
	e.rubrics = rubrics
	return nil
}

func (e *runtimeEnv) engine() *app.Engine {
	return app.NewEngine(
		app.WithLogger(e.log),
		app.WithWeakThreshold(e.cfg.WeakThreshold),
		app.WithCatalogue(e.catalogue),
	)
}
