package engine

import "errors"

var (
	// ErrNoProtoFiles indicates the manifest's proto patterns matched no
	// files.
	ErrNoProtoFiles = errors.New("no proto files found")

	// ErrOwnershipConflict indicates partitioning produced fatal
	// ownership diagnostics. Used by callers that treat errors as a hard
	// failure.
	ErrOwnershipConflict = errors.New("ownership conflict detected")
)
