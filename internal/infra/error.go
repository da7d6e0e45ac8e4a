package infra

import (
	"errors"
	"log/slog"

	"wheelshare/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindStaleState         RepositoryErrorKind = "STALE_STATE"
)

// NewRepoErr builds a RepositoryError without logging, for expected outcomes such as not found.
func NewRepoErr(kind RepositoryErrorKind, msg string) error {
	return RepositoryError{Kind: kind, msg: msg}
}

// WrapRepoErr classifies a driver error, logs it and wraps it with msg.
func WrapRepoErr(msg string, err error) error {
	kind := Classify(err)
	if kind != KindNotFound {
		slog.Error("Repository error: "+msg,
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
	return RepositoryError{Kind: kind, msg: msg, err: errs.Wrap(err, msg)}
}

// Classify maps Postgres error codes to repository error kinds.
func Classify(err error) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return KindDuplicateKey
	case pgerrcode.ForeignKeyViolation:
		return KindForeignKeyViolated
	case pgerrcode.ExclusionViolation:
		return KindConflict
	default:
		return KindDBFailure
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
