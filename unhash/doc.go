// Package unhash renames hash-named archive entries back to their original
// paths.
//
// A run takes a list of input paths and a dictionary lookup table. Each path
// is classified: files are split into a core name and extension, directories
// may carry an archive suffix such as "_fpk" after their core name. A core
// name that parses as a 64-bit hexadecimal value is a hashed name and is
// looked up in the table. Matches are renamed in place (files) or merged onto
// their destination tree (directories); misses are reported and left alone.
//
// Paths are processed one at a time, in sorted order.
package unhash
