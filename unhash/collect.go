package unhash

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultSkipPatterns keep dictionary-like text files out of a run.
var DefaultSkipPatterns = []string{"*.txt"}

// SkipList matches file names that are never collected as inputs.
type SkipList struct {
	patterns *gitignore.GitIgnore
}

// NewSkipList compiles gitignore-style patterns. Blank patterns are ignored.
func NewSkipList(patterns ...string) SkipList {
	var lines []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if len(lines) == 0 {
		return SkipList{}
	}
	return SkipList{patterns: gitignore.CompileIgnoreLines(lines...)}
}

// Matches reports whether the file name at path is skipped.
func (s SkipList) Matches(path string) bool {
	if s.patterns == nil {
		return false
	}
	return s.patterns.MatchesPath(filepath.Base(path))
}

// SplitArgs separates a dictionary argument from input paths. The first
// argument whose base name is dictionaryName is returned as the dictionary;
// every other argument is an input.
func SplitArgs(args []string, dictionaryName string) (dictionary string, inputs []string) {
	for _, arg := range args {
		if dictionary == "" && dictionaryName != "" && filepath.Base(arg) == dictionaryName {
			dictionary = arg
			continue
		}
		inputs = append(inputs, arg)
	}
	return dictionary, inputs
}

// Collector expands command line arguments into the paths to process.
type Collector struct {
	Classifier Classifier
	Skip       SkipList
}

// Collect returns the de-duplicated, sorted paths named by args.
//
// A file argument is collected unless skipped. A directory argument whose
// name is a hash followed by an archive suffix is collected itself; any other
// directory, including one whose bare name happens to be hexadecimal,
// contributes its immediate entries, skipping files matched by the skip list.
// Arguments that do not exist are ignored.
func (c Collector) Collect(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !c.Skip.Matches(arg) {
				add(arg)
			}
			continue
		}

		if cand, ok := c.Classifier.Classify(filepath.Clean(arg), true); ok && cand.Tag != "" {
			add(arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && c.Skip.Matches(e.Name()) {
				continue
			}
			add(filepath.Join(arg, e.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
