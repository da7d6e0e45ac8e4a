package readstore

import (
	"context"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/infra/repository/converter"
	"wheelshare/internal/pkg/pgconv"
	"wheelshare/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "failed to find user by ID")
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email}, "failed to find user by email")
}

func (r *UserReadStore) findOne(ctx context.Context, where squirrel.Eq, failMsg string) (*queries.UserView, error) {
	query, args, err := db.Psql.
		Select(converter.UserColumns("")...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}

	var row converter.UserRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		return nil, infra.WrapRepoErr(failMsg, err)
	}

	return &queries.UserView{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		Role:         user.Role(row.Role),
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		LastLogin:    pgconv.TimePtrFromPgtype(row.LastLogin),
		CreatedAt:    row.CreatedAt.UTC(),
	}, nil
}
