// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/render"
)

// =============================================================================
// QUIT AND INPUT HANDLING
// =============================================================================

func TestController_QuitTokens(t *testing.T) {
	for _, tok := range []string{"q", "Q", "exit", "  EXIT  ", "quit", "Quit"} {
		t.Run(tok, func(t *testing.T) {
			h := newHarness(t, &fakeBackend{}, lines(tok, "never read")...)

			require.NoError(t, h.ctrl.Run(context.Background()))
			assert.Empty(t, h.renderer.calls)
			assert.Len(t, h.input.replies, 1, "loop should stop at the quit token")
		})
	}
}

func TestController_BlankInputIgnored(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, lines("", "   ", "\t")...)

	require.NoError(t, h.ctrl.Run(context.Background()))
	assert.Empty(t, h.renderer.calls)
	assert.Empty(t, strings.TrimSpace(h.out.String()))
}

func TestController_DispatchesMessages(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, lines("hello", "quitting time", "q")...)

	require.NoError(t, h.ctrl.Run(context.Background()))
	require.Len(t, h.renderer.calls, 2)
	assert.Equal(t, renderCall{model: "gemini-flash-lite-latest", message: "hello"}, h.renderer.calls[0])
	assert.Equal(t, "quitting time", h.renderer.calls[1].message)
	assert.Equal(t, []string{"hello", "quitting time", "q"}, h.input.history)
}

func TestController_ContinuesAfterStreamFailure(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, lines("one", "two")...)
	h.renderer.outcome = render.Outcome{Text: "par", Err: errBoom}

	require.NoError(t, h.ctrl.Run(context.Background()))
	assert.Len(t, h.renderer.calls, 2)
}

func TestController_DispatchScopesInterrupt(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, lines("hello")...)

	require.NoError(t, h.ctrl.Run(context.Background()))
	require.Len(t, h.renderer.ctxs, 1)
	assert.Equal(t, 1, h.stops)
	assert.Error(t, h.renderer.ctxs[0].Err(), "dispatch context is released after the response")
}

// =============================================================================
// INTERRUPTS
// =============================================================================

func TestController_DoubleCtrlCExits(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, ctrlC, ctrlC, reply{line: "never read"})

	require.NoError(t, h.ctrl.Run(context.Background()))
	assert.Len(t, h.input.replies, 1)
	assert.Contains(t, h.out.String(), "Press Ctrl+C again or type q to quit")
}

func TestController_CtrlCCounterResetsAfterInput(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, ctrlC, reply{line: "hi"}, ctrlC, reply{line: "there"})

	require.NoError(t, h.ctrl.Run(context.Background()))
	require.Len(t, h.renderer.calls, 2)
	assert.Equal(t, 2, strings.Count(h.out.String(), "Press Ctrl+C again"))
}

func TestController_ReadFailure(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, reply{err: errBoom})

	err := h.ctrl.Run(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

// =============================================================================
// MODEL SWITCHING
// =============================================================================

func TestController_SwitchModel(t *testing.T) {
	backend := &fakeBackend{models: descriptors("gemini-flash-lite-latest", "gemini-2.5-pro")}
	h := newHarness(t, backend, lines("/MODEL", "2", "hi")...)
	first := h.ctrl.Session()

	require.NoError(t, h.ctrl.Run(context.Background()))

	assert.Equal(t, "gemini-2.5-pro", h.ctrl.Model())
	assert.Equal(t, h.ctrl.Model(), h.ctrl.Session().Model())
	assert.NotEqual(t, first.ID(), h.ctrl.Session().ID())
	assert.Equal(t, []string{"gemini-flash-lite-latest", "gemini-2.5-pro"}, backend.created)
	assert.Contains(t, h.out.String(), "Switched to model: gemini-2.5-pro")
	assert.Contains(t, h.out.String(), "New chat session created (Model: gemini-2.5-pro)")

	require.Len(t, h.renderer.calls, 1)
	assert.Equal(t, "gemini-2.5-pro", h.renderer.calls[0].model)
}

func TestController_SelectingCurrentModelKeepsSession(t *testing.T) {
	backend := &fakeBackend{models: descriptors("gemini-flash-lite-latest", "gemini-2.5-pro")}
	h := newHarness(t, backend, lines("/model", "1")...)
	first := h.ctrl.Session()

	require.NoError(t, h.ctrl.Run(context.Background()))

	assert.Same(t, first, h.ctrl.Session())
	assert.Len(t, backend.created, 1)
	assert.NotContains(t, h.out.String(), "New chat session created")
}

func TestController_SwitchFailureKeepsPreviousSession(t *testing.T) {
	backend := &fakeBackend{
		models:     descriptors("gemini-flash-lite-latest", "gemini-2.5-pro"),
		sessionErr: map[string]error{"gemini-2.5-pro": errors.New("permission denied")},
	}
	h := newHarness(t, backend, lines("/model", "2", "hi")...)
	first := h.ctrl.Session()

	require.NoError(t, h.ctrl.Run(context.Background()))

	assert.Equal(t, "gemini-flash-lite-latest", h.ctrl.Model())
	assert.Same(t, first, h.ctrl.Session())
	assert.Contains(t, h.out.String(), "[Error] permission denied")
	require.Len(t, h.renderer.calls, 1)
	assert.Equal(t, "gemini-flash-lite-latest", h.renderer.calls[0].model)
}

func TestController_CatalogFailureKeepsModel(t *testing.T) {
	h := newHarness(t, &fakeBackend{listErr: errBoom}, lines("/model", "hi")...)

	require.NoError(t, h.ctrl.Run(context.Background()))

	assert.Equal(t, "gemini-flash-lite-latest", h.ctrl.Model())
	assert.Contains(t, h.out.String(), "Failed to fetch models: boom")
	assert.Len(t, h.renderer.calls, 1)
}

func TestNewController_SessionFailure(t *testing.T) {
	backend := &fakeBackend{sessionErr: map[string]error{"gemini-flash-lite-latest": errBoom}}
	_, err := NewController(context.Background(), ControllerConfig{
		Backend: backend,
		Shell:   NewShell(&bytes.Buffer{}, nil),
		Model:   "gemini-flash-lite-latest",
	})
	assert.ErrorIs(t, err, errBoom)
}

// =============================================================================
// END TO END WITH THE RAW RENDERER
// =============================================================================

func TestController_RawRendererRoundTrip(t *testing.T) {
	var out bytes.Buffer
	shell := NewShell(&out, nil)
	input := &fakeInput{replies: lines("ping", "exit")}

	ctrl, err := NewController(context.Background(), ControllerConfig{
		Backend: &fakeBackend{},
		Renderer: render.New(render.Options{
			Mode:     config.RenderModeRaw,
			Theme:    "notty",
			Out:      &out,
			Reporter: shell,
		}),
		Input: input,
		Shell: shell,
		Model: "gemini-flash-lite-latest",
	})
	require.NoError(t, err)

	require.NoError(t, ctrl.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), "echo: ping"))
}
