// Package pathcode provides the 64-bit path hashes used to name entries
// extracted from Fox Engine archives.
//
// Extraction tools that cannot recover an entry's original path write the
// entry to disk under its hash, formatted as lowercase hexadecimal. The
// hashers in this package reproduce those values from a candidate path so
// a dictionary of known paths can be turned into a hash to name table.
//
// Two algorithms are available:
//   - PathCode64: the QAR file path hash (CityHash64 with path-derived seeds)
//   - StrCode64: the generic Fox Engine string hash
//
// Hash formatting and parsing live here as well, so the dictionary side and
// the file name side always agree on case and width.
package pathcode
