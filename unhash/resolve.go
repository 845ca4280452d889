package unhash

import "github.com/dendrascience/hashed-rename/util"

// Dictionary looks up original paths by formatted hash. *util.LookupTable
// satisfies it.
type Dictionary interface {
	Get(hash string) (string, bool)
}

// Resolve returns the original path for a candidate. The core name is the
// lookup key as is, so it only matches when it is written the way the
// dictionary hashes were formatted (lowercase, no leading zeros).
func Resolve(dict Dictionary, c Candidate) (string, bool) {
	return dict.Get(c.CoreName)
}

// RenamePlan is a resolved candidate and where it will be moved.
type RenamePlan struct {
	Source      Candidate
	Original    string
	Destination string
}

// NewRenamePlan places original plus the candidate's tag under the
// candidate's base directory.
func NewRenamePlan(c Candidate, original string) (RenamePlan, error) {
	dest, err := util.DestinationPath(c.BaseDir, original+c.Tag)
	if err != nil {
		return RenamePlan{}, err
	}
	return RenamePlan{Source: c, Original: original, Destination: dest}, nil
}
