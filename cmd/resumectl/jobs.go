package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-jobmatch/internal/bootstrap"
	"resume-jobmatch/internal/jobs"
	"resume-jobmatch/internal/resumes"
	"resume-jobmatch/internal/shared/config"
)

func newJobsCmd(loadConfig func() config.Config) *cobra.Command {
	var (
		skillsFlag string
		country    string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Search Adzuna for jobs matching a skill list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			skills := resumes.ParseSkillsParam(skillsFlag)
			if len(skills) == 0 {
				return resumes.ErrNoSkillsToMatch
			}
			client := bootstrap.BuildJobs(loadConfig())
			if !client.Configured() {
				return jobs.ErrNotConfigured
			}
			listings, err := client.Search(cmd.Context(), skills, jobs.SearchOptions{Country: country, Limit: limit})
			if err != nil {
				return fmt.Errorf("job search: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), resumes.JobsResponse{Skills: skills, Jobs: listings})
		},
	}
	cmd.Flags().StringVarP(&skillsFlag, "skills", "s", "", "Comma-separated skills (required)")
	cmd.Flags().StringVarP(&country, "country", "c", "", "Two-letter Adzuna country code")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Results per page")
	_ = cmd.MarkFlagRequired("skills")
	return cmd
}
