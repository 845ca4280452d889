package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Dictionary errors
	ErrDictionaryNotFound = errors.New("dictionary not found")
	ErrEmptyDictionary    = errors.New("dictionary empty")

	// Destination errors
	ErrEscapesBase = errors.New("destination escapes base directory")

	// Move errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrDeleteTimeout     = errors.New("timed out waiting for path to be deleted")
)
