package shared

import "fmt"

var (
	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")

	// Library errors
	ErrInvalidFolder = fmt.Errorf("invalid input folder")
	ErrNoFilesFound  = fmt.Errorf("no MP3 files found in the specified folder")

	// Assembly errors. ErrDecode is per-file and never aborts a run.
	ErrDecode      = fmt.Errorf("could not decode file")
	ErrEmptyResult = fmt.Errorf("no valid MP3 files could be processed")
	ErrWrite       = fmt.Errorf("could not write to the output file")
	ErrEncoder     = fmt.Errorf("encoder unavailable")
)
