// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/model"
)

// =============================================================================
// SHELL TESTS
// =============================================================================

func TestShell_Banner(t *testing.T) {
	var out bytes.Buffer
	NewShell(&out, nil).Banner("gemini-flash-lite-latest")

	s := out.String()
	assert.Contains(t, s, BannerTitle)
	assert.Contains(t, s, "Model: gemini-flash-lite-latest")
	assert.Contains(t, s, "/model")
	assert.True(t, strings.HasPrefix(s, "╭"))
}

func TestShell_StatusLines(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&out, nil)

	sh.StreamError(errors.New("connection reset"))
	sh.Interrupted()
	sh.Error("bad thing")

	assert.Equal(t, "[Stream error] connection reset\n[Interrupted]\n[Error] bad thing\n", out.String())
}

func TestShell_TruncatesLongErrors(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(&out, func() int { return 40 })

	sh.StreamError(errors.New(strings.Repeat("x", 200)))

	line := strings.TrimRight(out.String(), "\n")
	assert.LessOrEqual(t, runewidth.StringWidth(line), 40)
	assert.True(t, strings.HasSuffix(line, "..."))
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", truncateLine("short", 40))
	assert.Equal(t, "first ...", truncateLine("first\nsecond", 0))
	assert.Equal(t, "abcdefg...", truncateLine("abcdefghijklmnop", 10))
	assert.LessOrEqual(t, runewidth.StringWidth(truncateLine("日本語のテキストです", 8)), 8)
}

// =============================================================================
// TERMINAL TESTS
// =============================================================================

func TestResolveRenderMode(t *testing.T) {
	assert.Equal(t, config.RenderModeLive, ResolveRenderMode(config.RenderModeLive, true))
	assert.Equal(t, config.RenderModeRaw, ResolveRenderMode(config.RenderModeRaw, true))
	assert.Equal(t, config.RenderModeRaw, ResolveRenderMode(config.RenderModeLive, false))
}

func TestResolveTheme_NoColors(t *testing.T) {
	assert.Equal(t, "notty", ResolveTheme("auto"))
	assert.Equal(t, "notty", ResolveTheme("dark"))
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "gemchat version "+Version)
}

func TestPrintModels(t *testing.T) {
	backend := &fakeBackend{models: descriptors("gemini-2.0-flash", "gemini-flash-lite-latest")}

	var plain bytes.Buffer
	require.NoError(t, printModels(context.Background(), &plain, backend, "gemini-flash-lite-latest", false))
	assert.Equal(t, "gemini-2.0-flash\ngemini-flash-lite-latest\n", plain.String())

	var pretty bytes.Buffer
	require.NoError(t, printModels(context.Background(), &pretty, backend, "gemini-flash-lite-latest", true))
	assert.Contains(t, pretty.String(), "2. gemini-flash-lite-latest (current)")
}

func TestShell_ModelListAlignsDisplayNames(t *testing.T) {
	models := []model.Descriptor{
		model.NewDescriptor("models/gemini-2.0-flash", "Gemini 2.0 Flash", []string{model.ActionGenerateContent}),
		model.NewDescriptor("models/gemini-flash-lite-latest", "Gemini Flash-Lite Latest", []string{model.ActionGenerateContent}),
		model.NewDescriptor("models/gemini-exp", "", []string{model.ActionGenerateContent}),
	}

	var out bytes.Buffer
	NewShell(&out, nil).ModelList(models, "gemini-flash-lite-latest")

	lines := strings.Split(out.String(), "\n")
	var first, second, third string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "1. "):
			first = line
		case strings.Contains(line, "2. "):
			second = line
		case strings.Contains(line, "3. "):
			third = line
		}
	}

	assert.Contains(t, second, "2. gemini-flash-lite-latest (current)")
	assert.Equal(t, strings.Index(first, "Gemini 2.0 Flash"), strings.Index(second, "Gemini Flash-Lite Latest"))
	assert.Equal(t, "  3. gemini-exp", third)
}

func TestPrintModels_Errors(t *testing.T) {
	var out bytes.Buffer
	err := printModels(context.Background(), &out, &fakeBackend{listErr: errBoom}, "", false)
	assert.ErrorIs(t, err, errBoom)

	err = printModels(context.Background(), &out, &fakeBackend{}, "", false)
	assert.Error(t, err)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitGeneralError, GetExitCode(&config.MissingCredentialError{Path: "/x/.env"}))
	assert.Equal(t, ExitGeneralError, GetExitCode(&StartupError{Stage: "config", Err: errBoom}))
}
