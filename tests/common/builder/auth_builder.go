//go:build unit || e2e

package builder

import (
	reqdto "wheelshare/internal/handler/dto/request"
	"wheelshare/internal/usecase/commands"
)

type AuthBuilder struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
		Role:     "renter",
	}
}

func (a *AuthBuilder) With(mutate func(*AuthBuilder)) *AuthBuilder {
	mutate(a)
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildInput() commands.LoginInput {
	return a.BuildDTO().ToInput()
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:    a.Email,
		Password: a.Password,
		Name:     a.Name,
		Role:     a.Role,
	}
}
