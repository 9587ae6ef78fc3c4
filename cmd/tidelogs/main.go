package main

import (
	"os"

	"github.com/Egor213/tidelogs/internal/app"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tidelogs",
		Short: "Log ingestion and query service",
		Run: func(cmd *cobra.Command, args []string) {
			app.Run()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Apply migrations and start the API",
			Run: func(cmd *cobra.Command, args []string) {
				app.Run()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			Run: func(cmd *cobra.Command, args []string) {
				app.RunMigrations()
			},
		},
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
