package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wheelshare/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.Define("invalid cursor", errs.ErrValidation)

// CursorPosition is the (created_at, id) key of the last row of a page.
type CursorPosition struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (*CursorPosition, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidCursor, "cursor is not base64url")
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return nil, errs.Wrap(ErrInvalidCursor, "unknown cursor version")
	}

	parts := strings.SplitN(payload, "-", 2)
	if len(parts) != 2 {
		return nil, errs.Wrap(ErrInvalidCursor, "expected '<micros>-<uuid>'")
	}

	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidCursor, "invalid timestamp")
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, errs.Wrap(ErrInvalidCursor, "invalid id")
	}

	return &CursorPosition{CreatedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

// ValidateLimit clamps limit into [1, MaxListLimit], using fallback for non-positive values.
func ValidateLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Admits reports whether a row at (t, id) comes after the cursor in newest-first order.
func (c *CursorPosition) Admits(t time.Time, id uuid.UUID) bool {
	tm := t.Truncate(time.Microsecond)
	if tm.Equal(c.CreatedAt) {
		return id.String() < c.ID.String()
	}
	return tm.Before(c.CreatedAt)
}
