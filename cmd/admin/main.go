package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/rincon/cmd/admin/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Administration tools for the Rincón storefront",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.CreateUserCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.CheckCmd())
	rootCmd.AddCommand(cmd.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
