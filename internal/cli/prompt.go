// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Line editing for the chat REPL.
//
// History lives in memory for the lifetime of the process and is never
// written to disk.

package cli

import (
	"errors"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user presses Ctrl+C at a prompt.
var ErrAborted = errors.New("input aborted")

// InputReader reads lines from the user. ReadInput remembers non-blank
// lines for history navigation; ReadChoice does not.
//
// Both return ErrAborted on Ctrl+C and io.EOF on end of input.
type InputReader interface {
	ReadInput(prompt string) (string, error)
	ReadChoice(prompt string) (string, error)
}

// Prompt is an InputReader backed by liner.
// Supports arrow keys for history navigation and line editing.
type Prompt struct {
	line *liner.State
}

// NewPrompt creates a prompt. Call Close to restore the terminal.
func NewPrompt() *Prompt {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Prompt{line: line}
}

// ReadInput reads a chat line and adds it to history.
func (p *Prompt) ReadInput(prompt string) (string, error) {
	input, err := p.read(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// ReadChoice reads a one-off answer, such as a model number.
func (p *Prompt) ReadChoice(prompt string) (string, error) {
	return p.read(prompt)
}

func (p *Prompt) read(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	return input, err
}

// Close restores the terminal mode.
func (p *Prompt) Close() error {
	return p.line.Close()
}
