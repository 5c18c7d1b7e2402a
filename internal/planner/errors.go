package planner

import "errors"

var (
	// ErrInvalidInput is returned when the caller omits required input, e.g. no answers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable is returned when the generation service call fails.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
