// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// selector.go - Interactive model selection for the /model command.

package cli

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jeranaias/gemchat/internal/model"
)

// Catalog lists the models available for chat.
type Catalog interface {
	ListModels(ctx context.Context) ([]model.Descriptor, error)
}

// Selector lets the user pick a model from the live catalog.
type Selector struct {
	catalog Catalog
	input   InputReader
	shell   *Shell
	log     *slog.Logger
}

// NewSelector creates a selector.
func NewSelector(catalog Catalog, input InputReader, shell *Shell, log *slog.Logger) *Selector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Selector{catalog: catalog, input: input, shell: shell, log: log}
}

// Select shows the catalog and returns the chosen model ID. Every failure
// (catalog error, empty catalog, bad input, cancel) is reported to the user
// and returns current unchanged.
func (s *Selector) Select(ctx context.Context, current string) string {
	s.shell.Println()
	s.shell.Warn("Fetching available models...")

	models, err := s.catalog.ListModels(ctx)
	if err != nil {
		s.log.Warn("model selection aborted", "error", err)
		s.shell.Error("Failed to fetch models: " + err.Error())
		return current
	}
	if len(models) == 0 {
		s.shell.Error("No available models found")
		return current
	}

	s.shell.ModelList(models, current)
	s.shell.Hint("Enter a number to select a model, or press Enter to cancel")

	choice, err := s.input.ReadChoice(s.shell.Prompt(SelectPrompt))
	if err != nil {
		// Ctrl+C or end of input cancels the selection
		s.shell.Println()
		return current
	}

	selected, err := ResolveSelection(choice, models, current)
	switch {
	case errors.Is(err, ErrNotANumber):
		s.shell.Error("Please enter a valid number")
		return current
	case errors.Is(err, ErrOutOfRange):
		s.shell.Error("Invalid selection")
		return current
	}

	s.shell.Success("Switched to model: " + selected)
	s.log.Info("model selected", "from", current, "to", selected)
	return selected
}

// ResolveSelection maps the user's answer to a model ID. A blank answer
// keeps current. Numbers are 1-indexed into models.
func ResolveSelection(input string, models []model.Descriptor, current string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return current, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return current, ErrNotANumber
	}
	if n < 1 || n > len(models) {
		return current, ErrOutOfRange
	}
	return models[n-1].ID, nil
}
