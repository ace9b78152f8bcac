// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for gemchat.
//
// Startup failures are returned up to Execute, which prints them once and
// picks the exit code. Failures inside the REPL are reported on the shell
// and never end the session.

package cli

import (
	"errors"
	"fmt"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates a clean quit or end of input
	ExitSuccess = 0
	// ExitGeneralError indicates a startup or configuration failure
	ExitGeneralError = 1
)

// =============================================================================
// SELECTION ERRORS
// =============================================================================

var (
	// ErrNotANumber is returned when a model choice is not an integer.
	ErrNotANumber = errors.New("choice is not a number")

	// ErrOutOfRange is returned when a model choice is outside the list.
	ErrOutOfRange = errors.New("choice is out of range")
)

// =============================================================================
// STARTUP ERRORS
// =============================================================================

// StartupError wraps a failure that prevents the chat from starting.
type StartupError struct {
	Stage string // What was being set up (e.g., "config", "client")
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// GetExitCode determines the exit code for an error returned by a command.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneralError
}
