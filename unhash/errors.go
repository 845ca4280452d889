package unhash

import "errors"

var (
	ErrNoInputFiles        = errors.New("no files found")
	ErrSameDestination     = errors.New("destination is the source path")
	ErrDestinationInSource = errors.New("destination is inside the source directory")
)
