package cmd

import (
	"fmt"

	"github.com/dendrascience/hashed-rename/internal/config"
	"github.com/dendrascience/hashed-rename/pathcode"
	"github.com/dendrascience/hashed-rename/unhash"
	"github.com/dendrascience/hashed-rename/util"
	"github.com/dendrascience/hashed-rename/version"
	"github.com/spf13/cobra"
)

// envFile is read from the working directory before any command runs.
const envFile = ".env"

// NewRootCmd creates and returns the root cobra command for the hashed-rename CLI.
// The root command performs the rename run; subcommands are inspection aids.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hashed-rename [PATH...]",
		Short: "Restore original names of hashed Fox Engine archive entries",
		Long: `hashed-rename restores the original names of files and directories that
were extracted from a Fox Engine archive under hashed names.

Each PATH is a file or directory to process. A file named qar_dictionary.txt
among the arguments is used as the dictionary; otherwise the dictionary next
to the executable is used. Directories with a hashed name are renamed
themselves; other directories have their immediate entries processed.

Matched entries are moved to their original relative path under their current
parent directory. Hashed directories are merged into any existing destination.`,
		Args:    cobra.ArbitraryArgs,
		Version: version.GetFullVersion(),
		RunE:    runRename,
	}
	rootCmd.SetVersionTemplate(version.VersionTemplate())

	groupUtilities := "utilities"
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	hashCmd := NewHashCmd()
	lookupCmd := NewLookupCmd()
	scanCmd := NewScanCmd()

	hashCmd.GroupID = groupUtilities
	lookupCmd.GroupID = groupUtilities
	scanCmd.GroupID = groupUtilities

	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(scanCmd)

	return rootCmd
}

func runRename(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd.SilenceUsage = true

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	dictPath, inputs := unhash.SplitArgs(args, cfg.DictionaryName)
	if dictPath == "" {
		dictPath = cfg.DictionaryPath
	}

	lt, err := loadDictionary(cmd, cfg, dictPath)
	if err != nil {
		return err
	}

	paths, err := cfg.Collector().Collect(inputs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return unhash.ErrNoInputFiles
	}

	out := cmd.OutOrStdout()
	r := unhash.Renamer{
		Classifier: cfg.Classifier(),
		Dictionary: lt,
		Mover:      cfg.Mover(),
		Out:        out,
	}
	stats, err := r.Run(cmd.Context(), paths)

	fmt.Fprintln(out, "All done")
	fmt.Fprintln(out, stats)
	return err
}

// loadDictionary builds the lookup table for dictPath with the configured hasher.
func loadDictionary(cmd *cobra.Command, cfg config.Config, dictPath string) (*util.LookupTable, error) {
	h, err := pathcode.ByName(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	lt, err := util.LoadDictionary(cmd.Context(), dictPath, h, cfg.Workers)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d names from %s\n", lt.Len(), dictPath)
	return lt, nil
}

// dictionaryPath returns path, or the configured dictionary when path is empty.
func dictionaryPath(path string, cfg config.Config) string {
	if path == "" {
		return cfg.DictionaryPath
	}
	return path
}
