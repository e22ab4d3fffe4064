// Package goquiz converts word-processing documents holding numbered exam
// questions into structured question records plus diagnostics for content
// that could not be parsed confidently.
package goquiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brunobiangulo/goquiz/parser"
	"github.com/brunobiangulo/goquiz/quiz"
)

// Re-exported record types.
type (
	Question   = quiz.Question
	Choice     = quiz.Choice
	Media      = quiz.Media
	Diagnostic = quiz.Diagnostic
	Stats      = quiz.Stats
	Result     = quiz.Result
)

// Engine is the main entry point for document conversion.
type Engine interface {
	// Convert validates, decodes and converts the document at path.
	// Input rejections and decoder failures are returned as errors; parse
	// anomalies never are, they surface in Result.Unparsed.
	Convert(ctx context.Context, path string, opts ...ConvertOption) (*Result, error)

	// ConvertParagraphs converts already decoded paragraph markup.
	ConvertParagraphs(paragraphs []string, opts ...ConvertOption) *Result

	// Formats returns the supported file extensions, sorted.
	Formats() []string
}

// ConvertOption configures a single conversion.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	format   string
	category string
}

// WithFormat overrides extension-based format detection, e.g. when the
// upload was stored under a temporary name.
func WithFormat(format string) ConvertOption {
	return func(o *convertOptions) { o.format = strings.ToLower(strings.TrimPrefix(format, ".")) }
}

// WithCategory overrides the configured placeholder category.
func WithCategory(category string) ConvertOption {
	return func(o *convertOptions) { o.category = category }
}

// engine is the concrete implementation of Engine. It holds no per-call
// state, so one engine may serve concurrent conversions.
type engine struct {
	cfg     Config
	logger  *slog.Logger
	parsers *parser.Registry
}

// New creates a conversion engine with the given configuration.
func New(cfg Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &engine{
		cfg:     cfg,
		logger:  logger,
		parsers: parser.NewRegistry(),
	}, nil
}

func (e *engine) Formats() []string {
	f := e.parsers.Formats()
	sort.Strings(f)
	return f
}

func (e *engine) Convert(ctx context.Context, path string, opts ...ConvertOption) (*Result, error) {
	o := e.options(opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := e.checkInput(path, o.format)
	if err != nil {
		return nil, err
	}

	p, err := e.parsers.Get(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	parsed, err := p.Parse(ctx, path)
	if err != nil {
		if errors.Is(err, parser.ErrLegacyFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Error("decode failed", "path", path, "format", format, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, format, err)
	}

	e.logger.Info("document decoded",
		"file", filepath.Base(path),
		"format", format,
		"paragraphs", len(parsed.Paragraphs),
	)
	return e.builder(o).Convert(parsed.Paragraphs), nil
}

func (e *engine) ConvertParagraphs(paragraphs []string, opts ...ConvertOption) *Result {
	return e.builder(e.options(opts)).Convert(paragraphs)
}

func (e *engine) options(opts []ConvertOption) convertOptions {
	o := convertOptions{category: e.cfg.Category}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (e *engine) builder(o convertOptions) *quiz.Builder {
	return &quiz.Builder{
		Category:     o.category,
		MediaBaseURL: e.cfg.MediaBaseURL,
		Logger:       e.logger,
	}
}

// checkInput rejects missing, empty, oversized and mistyped documents and
// returns the format to decode with.
func (e *engine) checkInput(path, override string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}
	if info.Size() == 0 {
		return "", ErrEmptyInput
	}
	if e.cfg.MaxFileSize > 0 && info.Size() > e.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, info.Size(), e.cfg.MaxFileSize)
	}

	format := override
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	if _, err := e.parsers.Get(format); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if e.cfg.SniffContent {
		if err := sniff(path, format); err != nil {
			return "", err
		}
	}
	return format, nil
}
