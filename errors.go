package goquiz

import "errors"

var (
	// ErrEmptyInput is returned when the uploaded document has no bytes.
	ErrEmptyInput = errors.New("goquiz: empty input")

	// ErrInputTooLarge is returned when the document exceeds MaxFileSize.
	ErrInputTooLarge = errors.New("goquiz: input too large")

	// ErrUnsupportedFormat is returned for unrecognized file formats and for
	// files whose content does not match their extension.
	ErrUnsupportedFormat = errors.New("goquiz: unsupported document format")

	// ErrDecodeFailed is returned when the document decoder fails. No
	// partial question list is produced.
	ErrDecodeFailed = errors.New("goquiz: decoding failed")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("goquiz: invalid configuration")
)

// IsInputRejection reports whether err rejects the input before any
// decoding took place.
func IsInputRejection(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInputTooLarge) ||
		errors.Is(err, ErrUnsupportedFormat)
}
