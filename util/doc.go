// Package util provides the building blocks behind hashed-rename.
//
// It contains the pieces that do not depend on how a name is classified:
// turning a dictionary file into a hash lookup table, canonicalizing paths,
// and relocating files and directory trees on disk.
//
// Key Components:
//
// Lookup Tables:
//   - LookupTable maps a formatted path hash to the original path string
//   - Sharded by colorhash bucket so concurrent inserts only contend per shard
//   - First line of the dictionary wins when two lines share a hash
//
// Dictionary Building:
//   - Lines are read once and hashed by a pool of workers (runtime.NumCPU by default)
//   - Blank lines, trailing carriage returns and a UTF-8 byte order mark are ignored
//   - ErrDictionaryNotFound and ErrEmptyDictionary are fatal to a run
//
// Paths:
//   - NormalizePath resolves against the working directory and always uses forward slashes
//   - DestinationPath combines a base directory with a resolved name without escaping it
//
// Moving:
//   - MoveFile copies to a temporary sibling, renames it into place, then deletes the source
//   - MergeDirectory relocates every file of a tree onto a possibly existing destination tree
//   - DeleteAndWait removes a conflicting target and polls with bounded exponential backoff
package util
