// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, display and exit codes for promptchat commands.
//
// Command handlers return errors and let main decide how to show them and
// which exit code to use.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/promptchat/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a config file that cannot be read or is invalid
	ExitConfigError = 3
	// ExitNoAnswer indicates the API gave no answer to a one-shot question
	ExitNoAnswer = 4
)

// ErrNoAnswer is returned by the ask command when the question settled
// without an answer.
var ErrNoAnswer = errors.New("no answer, check your API key and model")

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports bad command line usage.
type UsageError struct {
	Reason string
	Usage  string // optional example invocation
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s\n  Usage: %s", e.Reason, e.Usage)
	}
	return e.Reason
}

// CommandError represents a failed command action with context.
type CommandError struct {
	Command string // e.g. "config"
	Action  string // e.g. "set"
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the command and action that failed.
func NewCommandError(command, action string, err error) error {
	return &CommandError{Command: command, Action: action, Err: err}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, DimStyle.Render("Run 'promptchat help' for usage."))
	}
}

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var validateErrs config.ValidateErrors
	if errors.As(err, &validateErrs) {
		return ExitConfigError
	}
	var validateErr config.ValidationError
	if errors.As(err, &validateErr) {
		return ExitConfigError
	}

	if errors.Is(err, ErrNoAnswer) {
		return ExitNoAnswer
	}

	return ExitGeneralError
}
