package cli

import (
	"errors"
	"fmt"

	"github.com/BioHazard786/huddle/internal/ui"
)

var (
	ErrKicked       = errors.New("removed from the room by the host")
	ErrDisconnected = errors.New("server closed the connection")
)

// CommandError names the step of a command that failed.
type CommandError struct {
	Op      string
	Err     error
	Details string
}

func (e *CommandError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) Print() {
	ui.PrintError(e.Error())
}

func NewError(op string, err error) *CommandError {
	return &CommandError{Op: op, Err: err}
}

func WrapError(op string, err error, details string) *CommandError {
	return &CommandError{Op: op, Err: err, Details: details}
}
