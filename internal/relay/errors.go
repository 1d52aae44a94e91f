package relay

import (
	"errors"
	"fmt"
)

// ErrNoTargetMessage means the history window held no eligible message.
// It ends a run silently and is never reported to the user.
var ErrNoTargetMessage = errors.New("no eligible message to rewrite")

// StageError is a transport or API failure in one pipeline step.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage a run failed in, or "" if err is not a StageError.
func FailedStage(err error) State {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
