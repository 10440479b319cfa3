package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eventdesk/eventdesk/internal/fixtures"
)

func newSeedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write starter fixture files to a directory",
		Long: "Writes the embedded events.json, participants.json, and tags.json " +
			"to a directory so they can be edited and served back with " +
			"EVENTDESK_FIXTURES_SOURCE=dir.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			for _, name := range fixtures.Names {
				data, err := fixtures.Starter(name)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, name+".json")
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, refusing to overwrite", path)
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "fixtures", "target directory")
	return cmd
}
