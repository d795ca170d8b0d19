package FEM2D

import "errors"

var (
	// ErrInvalidMeshSize is returned when the requested resolution cannot
	// form at least one element.
	ErrInvalidMeshSize = errors.New("invalid mesh size, need at least 2 nodes per direction")

	// ErrInvalidModeKind is returned for unrecognized boundary-condition /
	// mode kind strings.
	ErrInvalidModeKind = errors.New("invalid mode kind, must be TE or TM")
)
