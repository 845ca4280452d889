// Package main provides the hashed-rename command-line interface.
//
// Fox Engine archive extractors write entries whose names could not be
// recovered as hexadecimal hashes of the original path. hashed-rename hashes
// every line of a name dictionary, matches the hashed entries on disk against
// the result, and moves each match back to its original relative path.
// Unpacked archive directories carry a suffix such as _fpk or _fpkd and are
// merged into any existing destination.
//
// The main binary supports these subcommands besides the rename run itself:
//   - hash: print the hashed name of dictionary text
//   - lookup: resolve hashed names against the dictionary
//   - scan: show the planned moves without changing anything
package main
