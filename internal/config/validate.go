package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidColor indicates an unrecognized color mode.
	ErrInvalidColor = errors.New("color must be auto, always or never")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, &FieldError{Field: KeyLevel, Value: cfg.Level, Err: logger.ErrUnknownLevel})
	}

	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, cfg.Color) {
		errs = append(errs, &FieldError{Field: KeyColor, Value: cfg.Color, Err: ErrInvalidColor})
	}

	if err := validatePath(cfg.LogFile); err != nil {
		errs = append(errs, &FieldError{Field: KeyLogFile, Value: cfg.LogFile, Err: err})
	}

	return errs
}

// validatePath checks that a path is syntactically usable as a file path.
// An empty path is valid and disables the file sink.
func validatePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "." || cleaned == string(filepath.Separator) {
		return ErrInvalidPath
	}
	return nil
}

// FieldError is a validation failure of a single configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
