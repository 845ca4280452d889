package cmd

import (
	"fmt"

	"github.com/dendrascience/hashed-rename/internal/config"
	"github.com/dendrascience/hashed-rename/pathcode"
	"github.com/spf13/cobra"
)

// NewHashCmd creates and returns the hash subcommand.
// It prints the hashed name a dictionary line would produce.
func NewHashCmd() *cobra.Command {
	var hasherName string

	cmd := &cobra.Command{
		Use:   "hash TEXT...",
		Short: "Print the hashed name of each TEXT",
		Long: `Print the hashed name of each TEXT, in the same lowercase hexadecimal form
the extractor uses for file names. Useful when checking why a dictionary line
does not match an extracted entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hasherName == "" {
				cfg, err := config.Load(envFile)
				if err != nil {
					return err
				}
				hasherName = cfg.Hasher
			}
			h, err := pathcode.ByName(hasherName)
			if err != nil {
				return err
			}
			for _, text := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", pathcode.Hash(h, text), text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hasherName, "hasher", "", "Hash function, pathcode64 or strcode64 (default from HASHED_RENAME_HASHER)")

	return cmd
}
