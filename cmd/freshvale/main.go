package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/freshvale-inc/freshvale/internal/interfaces/cli/migrate"
	"github.com/freshvale-inc/freshvale/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "freshvale",
		Short: "Freshvale - recurring grocery delivery platform",
		Long:  `Freshvale runs the subscription fulfillment core: zone resolution, recurrence scheduling, and route sequencing.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
