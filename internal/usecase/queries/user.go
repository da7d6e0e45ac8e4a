package queries

import (
	"context"

	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/mock_user.go -package=queriesmock

var (
	ErrUserNotFound = errs.Define("user not found", errs.ErrNotFound)
	ErrUserInactive = errs.Define("user inactive", errs.ErrAuthorization)
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindByEmail(ctx context.Context, email string) (*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}
