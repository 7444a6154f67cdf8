// promptchat - terminal chat client for a model question API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/promptchat/internal/api"
	"github.com/jeranaias/promptchat/internal/cli"
	"github.com/jeranaias/promptchat/internal/config"
	"github.com/jeranaias/promptchat/internal/logging"
	"github.com/jeranaias/promptchat/internal/ui/chat"
	"github.com/jeranaias/promptchat/internal/ui/components"
	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/widget"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code.
func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdConfig:
		return exitCode(cli.HandleConfig(args, os.Stdout))
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}

	logger, closeLog := initLogging(cfg, args.Verbose)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(cfg, logger)
	logger.Info("starting", "command", cmd.String(), "version", Version,
		"endpoint", cfg.API.Endpoint, "model", cfg.Chat.DefaultModel)

	switch {
	case cmd == cli.CmdAsk:
		err = cli.RunAsk(ctx, cli.AskOptions{
			Widget:   app.widget,
			Asker:    app.client,
			Markdown: app.markdown,
			Query:    args.Query,
			Width:    cli.GetTerminalWidth(),
			In:       os.Stdin,
			Out:      os.Stdout,
			ErrOut:   os.Stderr,
		})
	case args.Plain || !cli.CanRunTUI():
		err = runPlain(ctx, app)
	default:
		err = runTUI(ctx, app)
	}

	if err != nil {
		logger.Error("command failed", "command", cmd.String(), "error", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if err != nil {
		cli.DisplayError(os.Stderr, err)
	}
	return cli.GetExitCode(err)
}

// loadConfig reads the config file, then applies flags over it. A broken
// default config file only warns; a broken --config file is an error.
func loadConfig(args cli.Args) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			if cfg == nil {
				return nil, err
			}
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
	}

	// CLI args override config
	if args.Endpoint != "" {
		cfg.API.Endpoint = args.Endpoint
	}
	if args.Model != "" {
		cfg.Chat.DefaultModel = args.Model
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// initLogging opens the developer log. When it cannot be opened the program
// runs with logging discarded.
func initLogging(cfg *config.Config, verbose bool) (*slog.Logger, func()) {
	file := cfg.Log.File
	if file == "" {
		def, err := config.DefaultLogFile()
		if err != nil {
			slog.SetDefault(logging.Discard())
			return slog.Default(), func() {}
		}
		file = def
	}

	logger, closer, err := logging.Init(logging.Options{
		Level:   cfg.Log.Level,
		File:    file,
		Verbose: verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		slog.SetDefault(logging.Discard())
		return slog.Default(), func() {}
	}
	return logger, func() { closeQuietly(closer) }
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

// app holds what every chat front end shares.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	theme    *styles.Theme
	markdown *components.MarkdownRenderer
	client   *api.Client
	widget   *widget.Widget
}

func newApp(cfg *config.Config, logger *slog.Logger) *app {
	return &app{
		cfg:      cfg,
		logger:   logger,
		theme:    styles.NewTheme(cfg.UI.Theme),
		markdown: components.NewMarkdownRenderer(cfg.UI.Markdown, cfg.UI.Theme),
		client:   api.NewClient(cfg.API.Endpoint).WithLogger(logger),
		widget: widget.New(widget.Options{
			Greeting: cfg.Chat.Greeting,
			Model:    cfg.Chat.DefaultModel,
		}),
	}
}

func runPlain(ctx context.Context, a *app) error {
	reader := cli.NewLineReader()
	defer reader.Close()

	session := &cli.ChatSession{
		Widget:   a.widget,
		Asker:    a.client,
		Models:   a.cfg.Chat.Models,
		Theme:    a.theme,
		Markdown: a.markdown,
		Reader:   reader,
		Out:      os.Stdout,
		Width:    cli.GetTerminalWidth(),
		Logger:   a.logger,
	}
	return session.Run(ctx)
}

func runTUI(ctx context.Context, a *app) error {
	// Outstanding requests are abandoned when the program exits.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := chat.New(a.theme, chat.Options{
		Widget:   a.widget,
		Asker:    a.client,
		Models:   a.cfg.Chat.Models,
		Markdown: a.markdown,
		Context:  ctx,
	})
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse wheel scrolling
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running promptchat: %w", err)
	}
	return nil
}
