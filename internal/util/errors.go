package util

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrBlockNotFound      = errors.New("block not found")
	ErrQuestionNotFound   = errors.New("question not found")

	// Edit workflow rejections. Stale and invalid-value are distinct so the
	// caller can tell "re-fetch and retry" apart from "fix your input".
	ErrStaleEdit           = errors.New("question was modified by someone else, reload and try again")
	ErrInvalidCorrectValue = errors.New("correct answer must be a, b, c or empty")
	ErrQuestionLocked      = errors.New("question is complete and locked for editing")

	ErrTooManyAttempts = errors.New("too many failed attempts")
)
