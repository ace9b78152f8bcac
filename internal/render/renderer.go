// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/model"
	"github.com/jeranaias/gemchat/internal/ui/styles"
)

// =============================================================================
// INTERFACES
// =============================================================================

// Streamer produces the chunks of one response. model.ChatSession satisfies it.
type Streamer interface {
	SendStream(ctx context.Context, text string) iter.Seq2[model.StreamChunk, error]
}

// Renderer sends one message and displays the streamed response.
type Renderer interface {
	Render(ctx context.Context, s Streamer, message string) Outcome
}

// Reporter receives the failure that ended a stream.
type Reporter interface {
	StreamError(err error)
	Interrupted()
}

// Outcome describes how a rendered response ended.
type Outcome struct {
	// Text is everything received, including the partial text of a failed stream
	Text string

	// Err is the error that stopped the stream, nil on completion
	Err error

	// Interrupted is true when the stream was cancelled by the user
	Interrupted bool
}

// Failed reports whether the stream ended with an error.
func (o Outcome) Failed() bool { return o.Err != nil }

// =============================================================================
// OPTIONS
// =============================================================================

const (
	// DefaultWidth is used when the terminal size is unknown
	DefaultWidth = 80

	// DefaultHeight is used when the terminal size is unknown
	DefaultHeight = 24

	// minWidth keeps the panel usable on very narrow terminals
	minWidth = 20

	// PanelTitle is shown in the live panel border
	PanelTitle = "Gemini"

	// Placeholder fills the live panel before the first chunk arrives
	Placeholder = "..."
)

// Options configures a Renderer.
type Options struct {
	// Mode selects the strategy: config.RenderModeLive (default) or config.RenderModeRaw
	Mode string

	// RefreshPerSecond caps live panel redraws (default: 12)
	RefreshPerSecond int

	// Theme is the glamour style: dark, light, notty or auto
	Theme string

	// Width caps the rendering width; 0 uses the terminal width
	Width int

	// Out receives the rendered output (default: os.Stdout)
	Out io.Writer

	// Size reports the terminal size; nil uses DefaultWidth x DefaultHeight
	Size func() (width, height int)

	// Reporter receives stream failures; nil prints them to Out
	Reporter Reporter

	// Theme styles for the panel and the fallback reporter
	Styles *styles.Theme

	// Logger receives render events; nil discards them
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = config.RenderModeLive
	}
	if o.RefreshPerSecond <= 0 {
		o.RefreshPerSecond = config.DefaultRefreshPerSecond
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Size == nil {
		o.Size = func() (int, int) { return DefaultWidth, DefaultHeight }
	}
	if o.Styles == nil {
		o.Styles = styles.NewTheme()
	}
	if o.Reporter == nil {
		o.Reporter = &writerReporter{out: o.Out, theme: o.Styles}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// width returns the rendering width for the current terminal.
func (o Options) width() int {
	w, _ := o.Size()
	if w <= 0 {
		w = DefaultWidth
	}
	if o.Width > 0 && o.Width < w {
		w = o.Width
	}
	return max(w, minWidth)
}

// narrow reports whether the terminal is known to be narrower than the
// smallest panel. width() never goes below minWidth, so such a terminal
// would wrap every frame line.
func (o Options) narrow() bool {
	w, _ := o.Size()
	return w > 0 && w < minWidth
}

// height returns the terminal height.
func (o Options) height() int {
	_, h := o.Size()
	if h <= 0 {
		return DefaultHeight
	}
	return h
}

// New builds the Renderer selected by opts.Mode.
func New(opts Options) Renderer {
	opts = opts.withDefaults()
	if strings.EqualFold(opts.Mode, config.RenderModeRaw) {
		return NewRawThenFinal(opts)
	}
	return NewLivePanel(opts)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// finish builds the Outcome for a stream and reports its failure, if any.
func finish(text string, err error, reporter Reporter) Outcome {
	out := Outcome{Text: text, Err: err}
	if err == nil {
		return out
	}
	if errors.Is(err, context.Canceled) {
		out.Interrupted = true
		reporter.Interrupted()
		return out
	}
	reporter.StreamError(err)
	return out
}

// writerReporter prints failures as styled lines.
type writerReporter struct {
	out   io.Writer
	theme *styles.Theme
}

func (r *writerReporter) StreamError(err error) {
	fmt.Fprintln(r.out, r.theme.RenderStreamError(err.Error()))
}

func (r *writerReporter) Interrupted() {
	fmt.Fprintln(r.out, r.theme.RenderInterrupted())
}
