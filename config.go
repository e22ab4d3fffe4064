package goquiz

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/brunobiangulo/goquiz/quiz"
)

// Config holds all configuration for the conversion engine.
type Config struct {
	// Category is the placeholder category stamped on every question.
	Category string `json:"category" yaml:"category"`

	// MediaBaseURL prefixes the synthesized per-question media path,
	// e.g. "/media" yields "/media/q7.png".
	MediaBaseURL string `json:"media_base_url" yaml:"media_base_url"`

	// MaxFileSize rejects larger documents before decoding (bytes).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// SniffContent checks that file bytes match the extension.
	SniffContent bool `json:"sniff_content" yaml:"sniff_content"`

	// Logger receives engine logs. Defaults to slog.Default().
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Category:     quiz.DefaultCategory,
		MediaBaseURL: quiz.DefaultMediaBaseURL,
		MaxFileSize:  50 << 20, // 50MB
		SniffContent: true,
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.MediaBaseURL, " \t\n") {
		return fmt.Errorf("%w: media_base_url must not contain whitespace", ErrInvalidConfig)
	}
	return nil
}
