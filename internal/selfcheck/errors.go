package selfcheck

import (
	"errors"
	"fmt"
)

var (
	// ErrNotActive is returned when an answer or finish arrives with no running session.
	ErrNotActive = errors.New("selfcheck: no active session")
	// ErrInvalidAnswer is returned for free text that is neither clearly yes nor clearly no.
	ErrInvalidAnswer = errors.New("selfcheck: answer is neither yes nor no")
	// ErrEmptyQuestionBank prevents a zero-question session from starting.
	ErrEmptyQuestionBank = errors.New("selfcheck: no questions available")
	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("selfcheck: controller closed")
)

// TransportError marks a failed remote call (network, status or decode).
// It is always recovered by a local fallback.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
