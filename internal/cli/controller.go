// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// controller.go - The chat REPL state machine.
//
// Interactive Commands (during chat):
//   /model              Select a model from the live catalog
//   q, exit, quit       Exit chat
//   Ctrl+C              Cancel current response; twice at the prompt exits
//   Ctrl+D              Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/jeranaias/gemchat/internal/model"
	"github.com/jeranaias/gemchat/internal/render"
)

// Backend is the model service the controller talks to.
type Backend interface {
	Catalog
	NewSession(ctx context.Context, modelID string) (model.ChatSession, error)
}

// InterruptFunc derives a context that is cancelled when the user
// interrupts. stop releases the signal registration.
type InterruptFunc func(parent context.Context) (ctx context.Context, stop context.CancelFunc)

// signalInterrupt cancels on SIGINT.
func signalInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

// quitTokens end the session when typed on their own.
var quitTokens = []string{"q", "exit", "quit"}

// ControllerConfig holds the collaborators of a Controller.
type ControllerConfig struct {
	Backend  Backend
	Renderer render.Renderer
	Input    InputReader
	Shell    *Shell

	// Model is the model the first session is bound to
	Model string

	// Interrupt scopes Ctrl+C to one dispatch (default: SIGINT)
	Interrupt InterruptFunc

	// Logger receives session events; nil discards them
	Logger *slog.Logger
}

// Controller owns the active model and chat session and runs the REPL.
// All state is touched only by the goroutine calling Run.
type Controller struct {
	backend   Backend
	renderer  render.Renderer
	input     InputReader
	shell     *Shell
	selector  *Selector
	interrupt InterruptFunc
	log       *slog.Logger

	model   string
	session model.ChatSession
}

// NewController opens the first chat session for cfg.Model.
func NewController(ctx context.Context, cfg ControllerConfig) (*Controller, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Interrupt == nil {
		cfg.Interrupt = signalInterrupt
	}

	session, err := cfg.Backend.NewSession(ctx, cfg.Model)
	if err != nil {
		return nil, err
	}

	return &Controller{
		backend:   cfg.Backend,
		renderer:  cfg.Renderer,
		input:     cfg.Input,
		shell:     cfg.Shell,
		selector:  NewSelector(cfg.Backend, cfg.Input, cfg.Shell, cfg.Logger),
		interrupt: cfg.Interrupt,
		log:       cfg.Logger,
		model:     session.Model(),
		session:   session,
	}, nil
}

// Model returns the active model identifier.
func (c *Controller) Model() string { return c.model }

// Session returns the active chat session.
func (c *Controller) Session() model.ChatSession { return c.session }

// Run reads and handles lines until a quit token, end of input, or a
// second consecutive Ctrl+C at the prompt.
func (c *Controller) Run(ctx context.Context) error {
	aborts := 0
	for {
		line, err := c.input.ReadInput(c.shell.Prompt(InputPrompt))
		switch {
		case errors.Is(err, ErrAborted):
			aborts++
			if aborts >= 2 {
				c.log.Info("chat ended", "reason", "interrupt")
				return nil
			}
			c.shell.Hint("Press Ctrl+C again or type q to quit")
			continue
		case errors.Is(err, io.EOF):
			c.shell.Println()
			c.log.Info("chat ended", "reason", "eof")
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		aborts = 0
		if c.Handle(ctx, line) {
			c.log.Info("chat ended", "reason", "quit")
			return nil
		}
	}
}

// Handle processes one input line and reports whether the user asked to quit.
func (c *Controller) Handle(ctx context.Context, line string) (quit bool) {
	text := strings.TrimSpace(line)
	switch {
	case isQuit(text):
		return true
	case text == "":
		return false
	case strings.EqualFold(text, "/model"):
		c.switchModel(ctx)
	default:
		c.dispatch(ctx, line)
	}
	return false
}

// switchModel runs the selector and replaces the session when the model
// changes. On failure the previous model and session stay active.
func (c *Controller) switchModel(ctx context.Context) {
	ctx, stop := c.interrupt(ctx)
	defer stop()

	chosen := c.selector.Select(ctx, c.model)
	if chosen == c.model {
		return
	}

	session, err := c.backend.NewSession(ctx, chosen)
	if err != nil {
		c.log.Warn("model switch failed", "from", c.model, "to", chosen, "error", err)
		c.shell.Error(err.Error())
		return
	}

	c.log.Info("model switched", "from", c.model, "to", chosen, "session", session.ID())
	c.model, c.session = chosen, session
	c.shell.Info(fmt.Sprintf("New chat session created (Model: %s)", chosen))
}

// dispatch streams one message on the active session. Ctrl+C cancels only
// this response.
func (c *Controller) dispatch(ctx context.Context, message string) {
	ctx, stop := c.interrupt(ctx)
	defer stop()

	c.shell.Println()
	out := c.renderer.Render(ctx, c.session, message)

	switch {
	case out.Interrupted:
		c.log.Info("response interrupted", "session", c.session.ID(), "chars", len(out.Text))
	case out.Failed():
		c.log.Warn("response failed", "session", c.session.ID(), "chars", len(out.Text), "error", out.Err)
	default:
		c.log.Debug("response complete", "session", c.session.ID(), "chars", len(out.Text))
	}
}

func isQuit(text string) bool {
	for _, tok := range quitTokens {
		if strings.EqualFold(text, tok) {
			return true
		}
	}
	return false
}
