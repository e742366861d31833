package ai

import "errors"

var (
	// ErrRequestFailed indicates the expansion service could not be reached or
	// answered with an error status.
	ErrRequestFailed = errors.New("term expansion request failed")

	// ErrEmptyResponse indicates the service answered without any choice.
	ErrEmptyResponse = errors.New("term expansion returned no results")
)
