package game

import "errors"

// Failure kinds reported by the Try* operations. The boolean action methods
// collapse all of them to false.
var (
	ErrInvalidReference      = errors.New("invalid reference")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrLocked                = errors.New("locked")
	ErrRequirementUnmet      = errors.New("requirement unmet")
	ErrLimitReached          = errors.New("purchase limit reached")
	ErrCorruptState          = errors.New("corrupt save state")
	ErrInvalidCatalog        = errors.New("invalid catalog")
)
