// Command resumectl runs the resume pipeline stages from the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"resume-jobmatch/internal/shared/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(loadConfig func() config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Resume parsing and job matching tools",
		Long:          "resumectl extracts text and skills from PDF or DOCX resumes, searches Adzuna for matching jobs, and applies database migrations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newExtractCmd(),
		newSkillsCmd(loadConfig),
		newJobsCmd(loadConfig),
		newMigrateCmd(loadConfig),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
