// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// root.go - Command definitions and startup wiring for gemchat.
//
// Examples:
//   gemchat              Start interactive chat
//   gemchat models       List models that support chat
//   gemchat version      Print version information

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/debuglog"
	"github.com/jeranaias/gemchat/internal/gemini"
	"github.com/jeranaias/gemchat/internal/render"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "gemchat",
	Short: "Chat with Google Gemini models in the terminal",
	Long: `gemchat streams Gemini responses into your terminal.

Type a message to chat, /model to switch models, and q, exit or quit to leave.
The API key is read from GEMINI_API_KEY or a .env file next to the binary.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models that support chat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModels(cmd.Context(), cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gemchat version %s (commit: %s, built: %s)\n", Version, GitCommit, BuildDate)
	},
}

var _ Backend = (*gemini.Client)(nil)

func init() {
	rootCmd.AddCommand(modelsCmd, versionCmd)
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return GetExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// STARTUP
// =============================================================================

// app holds what every command needs after startup.
type app struct {
	cfg    *config.Config
	client *gemini.Client
	log    *debuglog.Logger
}

// setup loads configuration, the API key and the debug log, then creates
// the Gemini client. A missing key is returned unwrapped so its message
// names the .env path.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &StartupError{Stage: "config", Err: err}
	}

	key, err := config.LoadAPIKey(config.DefaultEnvFiles()...)
	if err != nil {
		return nil, err
	}

	log, err := debuglog.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, &StartupError{Stage: "log", Err: err}
	}

	client, err := gemini.NewClient(ctx, gemini.ClientConfig{
		APIKey:      key,
		Temperature: config.DefaultTemperature,
		IdleTimeout: cfg.IdleTimeout(),
		Logger:      log.Logger,
	})
	if err != nil {
		log.Close()
		return nil, &StartupError{Stage: "client", Err: err}
	}

	log.Info("startup complete", "version", Version, "model", cfg.Model, "render", cfg.Render.Mode)
	return &app{cfg: cfg, client: client, log: log}, nil
}

// runChat starts the interactive REPL.
func runChat(ctx context.Context) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.log.Close()

	tty := IsStdoutTTY()
	if tty {
		ClearScreen()
	}

	shell := NewShell(os.Stdout, GetTerminalWidth)
	renderer := render.New(render.Options{
		Mode:             ResolveRenderMode(a.cfg.Render.Mode, tty),
		RefreshPerSecond: a.cfg.Render.RefreshPerSecond,
		Theme:            ResolveTheme(a.cfg.Render.Theme),
		Width:            a.cfg.Render.Width,
		Out:              os.Stdout,
		Size:             GetTerminalSize,
		Reporter:         shell,
		Styles:           theme,
		Logger:           a.log.Logger,
	})

	shell.Banner(a.cfg.Model)

	prompt := NewPrompt()
	defer prompt.Close()

	ctrl, err := NewController(ctx, ControllerConfig{
		Backend:  a.client,
		Renderer: renderer,
		Input:    prompt,
		Shell:    shell,
		Model:    a.cfg.Model,
		Logger:   a.log.Logger,
	})
	if err != nil {
		return &StartupError{Stage: "session", Err: err}
	}

	return ctrl.Run(ctx)
}

// runModels prints the conversational models and exits.
func runModels(ctx context.Context, out io.Writer) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.log.Close()

	return printModels(ctx, out, a.client, a.cfg.Model, IsStdoutTTY())
}

// printModels writes the catalog as a numbered list on a terminal and as
// one bare ID per line otherwise.
func printModels(ctx context.Context, out io.Writer, catalog Catalog, current string, tty bool) error {
	models, err := catalog.ListModels(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return fmt.Errorf("no available models found")
	}

	if tty {
		NewShell(out, nil).ModelList(models, current)
		return nil
	}
	for _, m := range models {
		fmt.Fprintln(out, m.ID)
	}
	return nil
}
