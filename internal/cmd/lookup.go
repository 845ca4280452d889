package cmd

import (
	"fmt"

	"github.com/dendrascience/hashed-rename/internal/config"
	"github.com/dendrascience/hashed-rename/pathcode"
	"github.com/spf13/cobra"
)

// NewLookupCmd creates and returns the lookup subcommand.
// It resolves hashed names against a dictionary without touching any files.
func NewLookupCmd() *cobra.Command {
	var (
		dictionary string
		savePath   string
	)

	cmd := &cobra.Command{
		Use:   "lookup HASH...",
		Short: "Resolve hashed names against the dictionary",
		Long: `Resolve each HASH against the dictionary and print the original name,
or "not found". HASH is the hexadecimal core of an extracted name, in any case
and with or without leading zeros.

With --save, the whole lookup table is also written as JSON, which is handy
for diffing two dictionaries.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && savePath == "" {
				return cmd.Help()
			}
			cmd.SilenceUsage = true

			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			lt, err := loadDictionary(cmd, cfg, dictionaryPath(dictionary, cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				v, ok := pathcode.Parse(arg)
				if !ok {
					fmt.Fprintf(out, "%s  not a hashed name\n", arg)
					continue
				}
				hash := pathcode.Format(v)
				if name, found := lt.Get(hash); found {
					fmt.Fprintf(out, "%s  %s\n", hash, name)
				} else {
					fmt.Fprintf(out, "%s  not found\n", hash)
				}
			}

			if savePath != "" {
				if err := lt.Save(savePath); err != nil {
					return fmt.Errorf("failed to save lookup table: %w", err)
				}
				fmt.Fprintf(out, "Saved %d entries to %s\n", lt.Len(), savePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dictionary, "dictionary", "d", "", "Dictionary file (default from HASHED_RENAME_DICTIONARY or next to the executable)")
	cmd.Flags().StringVar(&savePath, "save", "", "Write the lookup table as JSON to this path")

	return cmd
}
