package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/gcbaptista/go-document-reader/internal/extract"
	"github.com/gcbaptista/go-document-reader/internal/library"
	"github.com/gcbaptista/go-document-reader/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Extractor turns uploads into page text. Nil uses the PDF extractor.
	Extractor services.Extractor

	// Library is opened by Run once the command line has been parsed.
	Library *library.Library
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Library != nil {
		return m.Library.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docreader"),
		kong.Description("Store PDF documents, search their text and highlight matches"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docreader --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}

	extractor := m.Extractor
	if extractor == nil {
		extractor = extract.NewPDFExtractor(logger)
	}

	settings := cli.Settings()
	m.Library, err = library.Open(settings, library.Deps{
		Extractor: extractor,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCREADER_DATA_DIR to use a different data directory\n")
		return fmt.Errorf("failed to open library at %q: %w", settings.DataDir, err)
	}
	defer m.Close()

	deps.Library = m.Library
	deps.Settings = m.Library.Settings()
	deps.Logger = logger

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
