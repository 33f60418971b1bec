package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Track source errors
	ErrFetchFailed      = fmt.Errorf("track list fetch failed")
	ErrMissingTrackList = fmt.Errorf("track list snapshot not found")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Document and record errors
	ErrNotFound          = fmt.Errorf("not found")
	ErrMalformedDocument = fmt.Errorf("malformed document")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
