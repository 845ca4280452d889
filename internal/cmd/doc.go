// Package cmd provides the command-line interface implementation for hashed-rename.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: the rename run over PATH arguments
//   - hash: print the hashed name of dictionary text
//   - lookup: resolve hashed names against the dictionary
//   - scan: dry run that prints the planned moves
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Settings come from internal/config; the work
// itself is done by the unhash and util packages.
package cmd
