package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/rincon/internal/config"
	"github.com/templui/rincon/internal/db"
	"github.com/templui/rincon/internal/storage"
)

type check struct {
	name string
	run  func(ctx context.Context) error
}

func CheckCmd() *cobra.Command {
	var skipStorage bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify database, content and storage configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadEnv()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			return runChecks(ctx, cmd.OutOrStdout(), environmentChecks(cfg, skipStorage))
		},
	}

	cmd.Flags().BoolVar(&skipStorage, "skip-storage", false, "do not contact the S3 bucket")
	return cmd
}

func environmentChecks(cfg *config.Config, skipStorage bool) []check {
	checks := []check{
		{
			name: "database (" + cfg.DBDriver + ")",
			run: func(ctx context.Context) error {
				conn, err := openDB(cfg)
				if err != nil {
					return err
				}
				defer db.Close(conn)

				current, latest, err := db.Version(conn.DB, cfg.DBDriver)
				if err != nil {
					return err
				}
				if current < latest {
					return fmt.Errorf("schema at version %d, %d available", current, latest)
				}
				return nil
			},
		},
		{
			name: "content directory",
			run: func(ctx context.Context) error {
				return checkDir(filepath.Join(cfg.ContentPath, "pages"))
			},
		},
	}

	if !skipStorage {
		checks = append(checks, check{
			name: "storage bucket " + cfg.S3Bucket,
			run: func(ctx context.Context) error {
				s, err := storage.New(cfg)
				if err != nil {
					return err
				}
				return s.Ping(ctx)
			},
		})
	}

	return checks
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// runChecks runs every check and reports the failures as one error.
func runChecks(ctx context.Context, out io.Writer, checks []check) error {
	var failed int
	for _, c := range checks {
		err := c.run(ctx)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", c.name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}
