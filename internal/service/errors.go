package service

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrEmptyTaskTitle    = errors.New("task title must not be empty")
	ErrEmptyCategoryName = errors.New("category name must not be empty")

	// ErrSessionActive is returned when a pairing operation is started
	// while another session still owns the peer connection.
	ErrSessionActive = errors.New("a pairing session is already active")

	// ErrNoSession is returned when Complete or Cancel is called without a
	// session to act on.
	ErrNoSession = errors.New("no pairing session to act on")

	// ErrWrongRole is returned when a pairing operation does not match the
	// session's role, e.g. Complete on a joiner.
	ErrWrongRole = errors.New("operation does not match the session role")

	// ErrIncompleteCode is returned when the submitted pairing codes do not
	// assemble into a full ticket.
	ErrIncompleteCode = errors.New("pairing code is incomplete")
)
