package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Define creates a sentinel error already marked with the given kind.
func Define(msg string, kind error) error {
	return cr.Mark(cr.New(msg), kind)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// Reason returns the innermost message of err, stripped of wrap prefixes.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	return cr.UnwrapAll(err).Error()
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
