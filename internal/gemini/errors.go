// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
)

// ClientError represents an error from the Gemini client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel ClientErrors by type.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Cause == nil && t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeCatalog
	ErrTypeSession
	ErrTypeStream
	ErrTypeTimeout
	ErrTypeCancelled
)

// String returns the category name.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeCatalog:
		return "catalog"
	case ErrTypeSession:
		return "session"
	case ErrTypeStream:
		return "stream"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking with errors.Is.
var (
	ErrCatalog   = &ClientError{Type: ErrTypeCatalog, Message: "failed to list models"}
	ErrSession   = &ClientError{Type: ErrTypeSession, Message: "failed to create chat session"}
	ErrStream    = &ClientError{Type: ErrTypeStream, Message: "stream failed"}
	ErrTimeout   = &ClientError{Type: ErrTypeTimeout, Message: "stream stalled"}
	ErrCancelled = &ClientError{Type: ErrTypeCancelled, Message: "stream cancelled"}
)

// errIdle is the cancellation cause set by the idle watchdog.
var errIdle = errors.New("no data received before the idle timeout")

// streamError converts an error seen while consuming a stream into a
// ClientError. streamCtx is the watchdog context; parent is the caller's.
func streamError(parent, streamCtx context.Context, err error) error {
	if errors.Is(context.Cause(streamCtx), errIdle) {
		return &ClientError{Type: ErrTypeTimeout, Message: "stream stalled", Cause: errIdle}
	}
	if parent.Err() != nil {
		return &ClientError{Type: ErrTypeCancelled, Message: "stream cancelled", Cause: parent.Err()}
	}
	if err == nil {
		err = context.Cause(streamCtx)
	}
	return &ClientError{Type: ErrTypeStream, Message: "stream failed", Cause: err}
}
