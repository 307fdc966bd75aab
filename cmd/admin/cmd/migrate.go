package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/rincon/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	cmd.AddCommand(migrateStatusCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadEnv()
			conn, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			err = db.RunMigrations(conn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadEnv()
			conn, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			err = db.MigrateDown(conn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
			return nil
		},
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current and latest schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadEnv()
			conn, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			current, latest, err := db.Version(conn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d of %d\n", current, latest)
			return nil
		},
	}
}
