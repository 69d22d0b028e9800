package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-jobmatch/internal/shared/config"
	"resume-jobmatch/internal/shared/storage/db"
)

func newMigrateCmd(loadConfig func() config.Config) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				names, err := db.MigrationNames()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			ctx := cmd.Context()
			sqlDB, err := db.Connect(ctx, loadConfig().DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			return db.RunMigrations(ctx, sqlDB)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Print embedded migrations without applying them")
	return cmd
}
