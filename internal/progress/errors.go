package progress

import "errors"

var (
	ErrUnauthenticated = errors.New("no user identity")
	ErrInvalidInput    = errors.New("topic is required")
	ErrNoData          = errors.New("no progress data")
)
