package cmd

import (
	"fmt"

	"github.com/dendrascience/hashed-rename/internal/config"
	"github.com/dendrascience/hashed-rename/unhash"
	"github.com/spf13/cobra"
)

// scanCounts tallies what a rename run would do.
type scanCounts struct {
	total     int
	hashed    int
	matched   int
	unmatched int
	invalid   int
}

// NewScanCmd creates and returns the scan subcommand.
// It reports what a rename run would do without moving anything.
func NewScanCmd() *cobra.Command {
	var (
		dictionary string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "scan PATH...",
		Short: "Show what a rename run would do",
		Long: `Collect PATH arguments exactly like a rename run, resolve every hashed
name and print the planned moves. Nothing on disk is changed.

Useful for checking dictionary coverage of an extracted archive before
renaming it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			dictArg, inputs := unhash.SplitArgs(args, cfg.DictionaryName)
			if dictArg == "" {
				dictArg = dictionary
			}
			lt, err := loadDictionary(cmd, cfg, dictionaryPath(dictArg, cfg))
			if err != nil {
				return err
			}

			collector := cfg.Collector()
			paths, err := collector.Collect(inputs)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return unhash.ErrNoInputFiles
			}

			counts := runScan(cmd, collector.Classifier, lt, paths, verbose)
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d, hashed %d, matched %d, unmatched %d, invalid %d\n",
				counts.total, counts.hashed, counts.matched, counts.unmatched, counts.invalid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dictionary, "dictionary", "d", "", "Dictionary file (default from HASHED_RENAME_DICTIONARY or next to the executable)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Also list unmatched names")

	return cmd
}

func runScan(cmd *cobra.Command, c unhash.Classifier, dict unhash.Dictionary, paths []string, verbose bool) scanCounts {
	out := cmd.OutOrStdout()
	var counts scanCounts

	for _, path := range paths {
		counts.total++
		cand, ok, err := c.ClassifyPath(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			counts.invalid++
			continue
		}
		if !ok {
			continue
		}
		counts.hashed++

		original, found := unhash.Resolve(dict, cand)
		if !found {
			counts.unmatched++
			if verbose {
				fmt.Fprintf(out, "unmatched  %s\n", path)
			}
			continue
		}

		plan, err := unhash.NewRenamePlan(cand, original)
		if err != nil {
			fmt.Fprintf(out, "invalid    %s: %v\n", path, err)
			counts.invalid++
			continue
		}
		counts.matched++
		fmt.Fprintf(out, "rename     %s -> %s\n", path, plan.Destination)
	}

	return counts
}
