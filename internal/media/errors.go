package media

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrSourceNotFound      = errors.New("source not found")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrNotAddable          = errors.New("not addable")
	ErrOrdering            = errors.New("ordering error")
	ErrParse               = errors.New("parse error")
	ErrIO                  = errors.New("io error")
	ErrCollisionLimit      = errors.New("collision limit reached")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the sentinel errors
// above so callers can classify the failure with errors.Is.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "media failure"
	}
	return strings.Join(parts, ": ")
}
