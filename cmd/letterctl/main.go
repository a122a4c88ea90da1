package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "letterctl",
		Short:        "Operational commands for the letterpay backend",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(remindCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
