package model

import "errors"

// Sentinel errors surfaced by the store and the approval transition rules.
// Handlers map these onto HTTP status codes with errors.Is.
var (
	// ErrRequestNotFound means a status update targeted an unknown request id.
	ErrRequestNotFound = errors.New("request not found")

	// ErrInvalidTransition means the acting role tried a decision on a
	// request that is not pending for that role.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyRejectionReason means a rejection was attempted without a reason.
	ErrEmptyRejectionReason = errors.New("rejection reason must not be empty")
)
