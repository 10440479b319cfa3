package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eventdesk",
		Short: "A self-hosted event manager",
		Long:  "Eventdesk keeps events, participants, and tags in memory and serves them over HTTP.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
