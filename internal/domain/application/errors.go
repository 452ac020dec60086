package application

import "errors"

var (
	// ErrNotFound: no application with the given public id.
	ErrNotFound = errors.New("application not found")
	// ErrValidation: malformed or missing required submission fields.
	ErrValidation = errors.New("invalid application input")
	// ErrScoring: the scoring strategy failed; nothing was persisted.
	ErrScoring = errors.New("scoring failed")
	// ErrConflict: the generated application id collided and retries ran out.
	ErrConflict = errors.New("application id conflict")
	// ErrInvalidStatus: status update requested with an unknown state.
	ErrInvalidStatus = errors.New("invalid application status")
)
