package converter

import (
	"time"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var userColumns = []string{
	"id", "email", "name", "password_hash", "role", "is_active", "last_login", "created_at", "updated_at",
}

func UserColumns(alias string) []string {
	return qualify(alias, userColumns)
}

type UserRow struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *UserRow) Targets() []any {
	return []any{
		&r.ID, &r.Email, &r.Name, &r.PasswordHash, &r.Role, &r.IsActive, &r.LastLogin, &r.CreatedAt, &r.UpdatedAt,
	}
}

func UserToInsert(u *user.User) map[string]any {
	return map[string]any{
		"id":            u.ID(),
		"email":         u.Email().Value(),
		"name":          u.Name(),
		"password_hash": u.PasswordHash(),
		"role":          u.Role().String(),
		"is_active":     u.IsActive(),
		"created_at":    pgconv.TimeToPgtype(u.CreatedAt()),
		"updated_at":    pgconv.TimeToPgtype(u.UpdatedAt()),
	}
}
