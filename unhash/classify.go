package unhash

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/hashed-rename/pathcode"
)

// DefaultArchiveSuffixes are the directory tags extraction tools append to
// the hashed name of an unpacked archive.
var DefaultArchiveSuffixes = []string{"_dat", "_fpk", "_fpkd", "_pftxs", "_sbp"}

// SuffixSet is an immutable set of archive suffixes.
type SuffixSet map[string]struct{}

func NewSuffixSet(suffixes ...string) SuffixSet {
	s := make(SuffixSet, len(suffixes))
	for _, suffix := range suffixes {
		s[suffix] = struct{}{}
	}
	return s
}

func (s SuffixSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Candidate is a filesystem entry whose name parsed as a hash.
type Candidate struct {
	Path     string
	IsDir    bool
	BaseDir  string
	CoreName string // the hashed part of the name
	Tag      string // file extension or archive suffix, possibly empty
	Hash     uint64
}

// Classifier splits entry names into a core name and trailing tag.
type Classifier struct {
	Suffixes SuffixSet
}

func NewClassifier(suffixes SuffixSet) Classifier {
	if suffixes == nil {
		suffixes = NewSuffixSet(DefaultArchiveSuffixes...)
	}
	return Classifier{Suffixes: suffixes}
}

// Classify reports whether the entry at path has a hashed name. Entries whose
// core name is not a 64-bit hexadecimal value are not candidates.
func (c Classifier) Classify(path string, isDir bool) (Candidate, bool) {
	name := filepath.Base(path)

	var core, tag string
	if isDir {
		core, tag = c.splitSuffix(name)
	} else {
		tag = filepath.Ext(name)
		core = strings.TrimSuffix(name, tag)
	}

	hash, ok := pathcode.Parse(core)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Path:     path,
		IsDir:    isDir,
		BaseDir:  filepath.Dir(path),
		CoreName: core,
		Tag:      tag,
		Hash:     hash,
	}, true
}

// ClassifyPath stats path and classifies it. A symlink to a file is
// classified as a file; a symlink to a directory is never a candidate, since
// merging would move the link instead of the tree behind it.
func (c Classifier) ClassifyPath(path string) (Candidate, bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Candidate{}, false, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil {
			return Candidate{}, false, err
		}
		if target.IsDir() {
			return Candidate{}, false, nil
		}
		info = target
	}
	cand, ok := c.Classify(path, info.IsDir())
	return cand, ok, nil
}

// splitSuffix separates a recognized archive suffix from a directory name.
// A name that is only a suffix is left whole.
func (c Classifier) splitSuffix(name string) (core, tag string) {
	if c.Suffixes.Contains(name) {
		return name, ""
	}
	i := strings.LastIndexByte(name, '_')
	if i == -1 || !c.Suffixes.Contains(name[i:]) {
		return name, ""
	}
	return name[:i], name[i:]
}
