package main

import (
	"github.com/spf13/cobra"

	"resume-jobmatch/internal/bootstrap"
	"resume-jobmatch/internal/shared/config"
	"resume-jobmatch/internal/skills"
)

func newSkillsCmd(loadConfig func() config.Config) *cobra.Command {
	var noAI bool
	cmd := &cobra.Command{
		Use:   "skills <file>",
		Short: "Extract skills from a resume",
		Long:  "Extracts skills with the configured model, falling back to keyword matching when the model is unavailable or returns something unusable.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readResume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cfg := loadConfig()
			if noAI {
				cfg.LLMProvider = config.ProviderNone
			}
			ctx := cmd.Context()
			extractor := skills.NewExtractor(bootstrap.BuildCompleter(ctx, cfg), cfg.LLMTimeout)
			return writeJSON(cmd.OutOrStdout(), extractor.ExtractWithSource(ctx, text))
		},
	}
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the model and use keyword matching only")
	return cmd
}
