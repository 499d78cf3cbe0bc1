package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed request parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPopularDisabled signals that no popular-searches store is configured.
	ErrPopularDisabled = errors.New("popular searches disabled")
)
