package unhash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/dendrascience/hashed-rename/util"
)

// RunStats counts what happened to each input path of a run.
type RunStats struct {
	Total     int
	Renamed   int
	Unmatched int
	Skipped   int // not a hashed name
	Failed    int
}

func (s RunStats) String() string {
	return fmt.Sprintf("renamed %d, unmatched %d, skipped %d, failed %d", s.Renamed, s.Unmatched, s.Skipped, s.Failed)
}

// Renamer resolves hashed names and moves matched entries into place.
type Renamer struct {
	Classifier Classifier
	Dictionary Dictionary
	Mover      util.Mover
	Out        io.Writer
}

// Run processes paths one at a time. A failure on one path is logged and
// counted, and the run moves on to the next; all failures are joined into the
// returned error. Cancelling ctx stops the run between paths.
func (r *Renamer) Run(ctx context.Context, paths []string) (RunStats, error) {
	var stats RunStats
	var errs []error

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		stats.Total++
		if err := r.Process(path, &stats); err != nil {
			log.Printf("failed to rename %s: %v", path, err)
			stats.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	return stats, errors.Join(errs...)
}

// Process classifies, resolves and renames a single path, updating stats for
// every outcome except failure.
func (r *Renamer) Process(path string, stats *RunStats) error {
	cand, ok, err := r.Classifier.ClassifyPath(path)
	if err != nil {
		return err
	}
	if !ok {
		stats.Skipped++
		return nil
	}

	original, found := Resolve(r.Dictionary, cand)
	if !found {
		fmt.Fprintf(r.out(), "Could not find dictionary match for %s\n", cand.CoreName)
		stats.Unmatched++
		return nil
	}

	fmt.Fprintf(r.out(), "Found match for %s : %s, renaming..\n", cand.CoreName, original)
	plan, err := NewRenamePlan(cand, original)
	if err != nil {
		return err
	}
	if err := r.Execute(plan); err != nil {
		return err
	}
	stats.Renamed++
	return nil
}

// Execute performs the filesystem change for plan.
func (r *Renamer) Execute(plan RenamePlan) error {
	src, err := util.NormalizePath(plan.Source.Path)
	if err != nil {
		return err
	}
	if src == plan.Destination {
		return fmt.Errorf("%w: %s", ErrSameDestination, src)
	}

	if !plan.Source.IsDir {
		return r.Mover.MoveFile(src, plan.Destination)
	}
	if util.IsWithin(plan.Destination, src) {
		return fmt.Errorf("%w: %s -> %s", ErrDestinationInSource, src, plan.Destination)
	}
	return r.Mover.MergeDirectory(src, plan.Destination)
}

func (r *Renamer) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}
