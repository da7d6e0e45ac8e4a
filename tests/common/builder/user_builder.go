//go:build unit || e2e

package builder

import (
	"time"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: "hashed_password",
		Role:         "renter",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(email, u.Name, u.PasswordHash, role)
}

// BuildStored keeps the builder's ID, as if loaded from storage.
func (u *UserBuilder) BuildStored() *user.User {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		panic(err)
	}
	return user.ReconstructUser(
		u.ID, email, u.Name, u.PasswordHash, user.Role(u.Role),
		nil, u.IsActive, Now.Add(-48*time.Hour), Now.Add(-48*time.Hour),
	)
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	return &queries.UserView{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         user.Role(u.Role),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
