package main

import (
	"os"

	"github.com/spf13/cobra"
)

const appName = "tracking-service"

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "tracking",
		Short:        "Live trip tracking service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional config file (yaml or env)")
	root.AddCommand(newServeCommand(), newMigrateCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
