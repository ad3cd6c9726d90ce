package arns

import "errors"

// Every failure mode of the lookup and migration flows maps to one of
// these sentinels. They are wrapped with %w where raised and recovered
// at the command boundary; nothing propagates past it.
var (
	ErrDirectoryUnavailable = errors.New("name registry unavailable")
	ErrInvalidURL           = errors.New("invalid permaweb URL")
	ErrSubmissionFailed     = errors.New("record update submission failed")
	ErrNameNotFound         = errors.New("name not found in registry")
)
