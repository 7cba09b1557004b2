package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zhenghao/billsnap/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidCorrection = errors.New("invalid correction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCorrection validates a correction record before persisting it.
func validateCorrection(c *model.Correction) error {
	if c == nil {
		return fmt.Errorf("%w: correction", ErrNilParameter)
	}
	if strings.TrimSpace(c.Merchant) == "" {
		return fmt.Errorf("%w: merchant is required", ErrInvalidCorrection)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidCorrection, c.Category)
	}
	if c.Source != model.CorrectionManual && c.Source != model.CorrectionExternal {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidCorrection, c.Source)
	}
	return nil
}
