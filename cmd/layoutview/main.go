package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/memory"
	"github.com/wippyai/gpu-layout/schema"
	"github.com/wippyai/gpu-layout/wgslcheck"
)

type options struct {
	schemaFile string
	typeName   string
	wgslFile   string
	color      bool
}

func main() {
	var (
		schemaFile  = flag.String("schema", "", "Path to TOML layout schema")
		typeName    = flag.String("type", "", "Type to show (default: all)")
		wgslFile    = flag.String("wgsl", "", "WGSL source to verify types against")
		watch       = flag.Bool("watch", false, "Reload when the schema file changes")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		logLevel    = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	if *schemaFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: layoutview -schema <file.toml> [-type Name] [-wgsl shader.wgsl]")
		fmt.Fprintln(os.Stderr, "       layoutview -schema <file.toml> -watch")
		fmt.Fprintln(os.Stderr, "       layoutview -schema <file.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	schema.SetLogger(log.Named("schema"))
	memory.SetLogger(log.Named("memory"))

	opts := options{
		schemaFile: *schemaFile,
		typeName:   *typeName,
		wgslFile:   *wgslFile,
		color:      term.IsTerminal(int(os.Stdout.Fd())),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *interactive:
		err = runInteractive(ctx, opts, *watch)
	case *watch:
		err = runWatch(ctx, os.Stdout, opts, log)
	default:
		err = run(os.Stdout, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func run(w io.Writer, opts options) error {
	s, err := schema.Load(opts.schemaFile)
	if err != nil {
		return err
	}
	return show(w, s, opts)
}

func show(w io.Writer, s *schema.Schema, opts options) error {
	types, err := selectTypes(s, opts.typeName)
	if err != nil {
		return err
	}
	for _, t := range types {
		fmt.Fprintf(w, "%s (%s, %d bytes)\n", t.Name, t.Packing, t.Struct.ByteSize())
		fmt.Fprintln(w, renderTable(t.Name, t.Struct, "", opts.color))
	}
	if opts.wgslFile == "" {
		return nil
	}

	src, err := os.ReadFile(opts.wgslFile)
	if err != nil {
		return fmt.Errorf("read wgsl: %w", err)
	}
	module, err := wgslcheck.Parse(string(src))
	if err != nil {
		return err
	}
	failed := 0
	for _, t := range types {
		line, ok := verify(module, t)
		fmt.Fprintln(w, line)
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d types do not match %s", failed, len(types), opts.wgslFile)
	}
	return nil
}

func selectTypes(s *schema.Schema, name string) ([]schema.Type, error) {
	if name == "" {
		return s.Types(), nil
	}
	st, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	for _, t := range s.Types() {
		if t.Struct == st {
			return []schema.Type{t}, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseSchema, "type", name)
}

func runWatch(ctx context.Context, w io.Writer, opts options, log *zap.Logger) error {
	if err := run(w, opts); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	err := schema.Watch(ctx, opts.schemaFile, func(s *schema.Schema, err error) {
		if err != nil {
			log.Warn("schema reload failed", zap.Error(err))
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(w, "\n--- reloaded %s ---\n", opts.schemaFile)
		if err := show(w, s, opts); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
