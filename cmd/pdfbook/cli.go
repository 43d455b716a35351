package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hugobch/pdfbook"
	"github.com/hugobch/pdfbook/internal/config"
)

// CLI-level sentinel errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// run dispatches to the requested subcommand.
func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("%w: no command given", ErrUnknownCommand)
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], stdout, stderr)
	case "build":
		return runBuild(args[1:], stdout, stderr)
	case "watch":
		return runWatch(args[1:], stderr)
	case "version", "--version":
		fmt.Fprintln(stdout, "pdfbook", Version)
		return nil
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
}

func runInit(args []string, stdout, stderr io.Writer) error {
	f, err := parseInitFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := pdfbook.InitProject(f.dir, f.title, f.author, f.language); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Project initialized.")
	fmt.Fprintln(stdout, "Edit", filepath.Join(f.dir, pdfbook.ConfigFileName), "and run 'pdfbook build'.")
	return nil
}

func runBuild(args []string, stdout, stderr io.Writer) error {
	f, err := parseBuildFlags("build", args, stderr)
	if err != nil {
		return err
	}

	in, timeout, err := loadInput(f)
	if err != nil {
		return err
	}

	b := pdfbook.NewBuilder(builderOptions(f, timeout, stderr)...)
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.htmlOnly {
		_, path, err := b.BuildHTML(ctx, in)
		if err != nil {
			return err
		}
		if err := copyProjectAssets(in.RootDir); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "HTML written to", path)
		return nil
	}

	if err := b.Build(ctx, in); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Build complete.")
	return nil
}

func runWatch(args []string, stderr io.Writer) error {
	f, err := parseBuildFlags("watch", args, stderr)
	if err != nil {
		return err
	}

	in, timeout, err := loadInput(f)
	if err != nil {
		return err
	}

	b := pdfbook.NewBuilder(builderOptions(f, timeout, stderr)...)
	defer b.Close()

	level := slog.LevelInfo
	if f.common.verbose {
		level = slog.LevelDebug
	}
	if f.common.quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rebuild := func(ctx context.Context) error {
		if f.htmlOnly {
			_, _, err := b.BuildHTML(ctx, in)
			if err != nil {
				return err
			}
			return copyProjectAssets(in.RootDir)
		}
		return b.Build(ctx, in)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial build; failures are reported but the watcher still starts
	// so the next save can fix the problem.
	if err := rebuild(ctx); err != nil {
		logger.Error("initial build failed", "err", err)
	}

	w, err := pdfbook.NewWatcher(in.RootDir, rebuild, logger)
	if err != nil {
		return err
	}
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// builderOptions translates CLI flags into Builder options.
func builderOptions(f *buildFlags, timeout time.Duration, stderr io.Writer) []pdfbook.Option {
	opts := []pdfbook.Option{pdfbook.WithTimeout(timeout)}
	if !f.common.quiet {
		opts = append(opts, pdfbook.WithProgressOutput(stderr))
	}
	return opts
}

// loadInput reads the project configuration and maps it to a build Input.
func loadInput(f *buildFlags) (pdfbook.Input, time.Duration, error) {
	root, err := filepath.Abs(f.root)
	if err != nil {
		return pdfbook.Input{}, 0, fmt.Errorf("resolving project root: %w", err)
	}

	cfgPath := f.common.config
	if cfgPath == "" {
		cfgPath = filepath.Join(root, pdfbook.ConfigFileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return pdfbook.Input{}, 0, err
	}

	in := pdfbook.Input{
		RootDir:     root,
		Source:      cfg.Source,
		Title:       cfg.Title,
		Author:      cfg.Author,
		Language:    cfg.Language,
		Theme:       cfg.Theme,
		SyntaxTheme: cfg.SyntaxTheme,
		CustomCSS:   cfg.CustomCSS,
		TOCTitle:    cfg.TOCTitle,
		OutputName:  cfg.Output.Filename,
	}
	if cfg.Margins != nil {
		in.Margins = &pdfbook.Margins{
			Top:    cfg.Margins.Top,
			Bottom: cfg.Margins.Bottom,
			Left:   cfg.Margins.Left,
			Right:  cfg.Margins.Right,
		}
	}

	timeout := 60 * time.Second
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return pdfbook.Input{}, 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, f.timeout)
		}
		timeout = d
	}

	return in, timeout, nil
}

// copyProjectAssets mirrors assets/ into build/assets for HTML-only output,
// so relative image links resolve when opening the file in a browser.
func copyProjectAssets(root string) error {
	return pdfbook.CopyAssets(
		filepath.Join(root, "assets"),
		filepath.Join(root, "build", "assets"),
	)
}
