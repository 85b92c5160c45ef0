package operations

import (
	"errors"
	"fmt"

	"clinear/internal/prompt"
)

// Errors that stop a workflow before any label is changed.
var (
	ErrEmptySelection = errors.New("no labels selected")
	ErrAborted        = errors.New("aborted")
	ErrNoMatches      = errors.New("no labels matched the pattern")
)

// PatternMismatchError names a selected label the rename pattern does not match.
type PatternMismatchError struct {
	Label   string
	Pattern string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("label %s does not match pattern %s", e.Label, e.Pattern)
}

// RemoteError wraps a failure to load the label directory.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func promptError(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		return ErrAborted
	}
	return err
}
