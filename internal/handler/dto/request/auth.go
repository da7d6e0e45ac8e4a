package request

import "wheelshare/internal/usecase/commands"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{Email: r.Email, Password: r.Password}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"required,oneof=renter carOwner mechanic"`
}

func (r RegisterRequest) ToInput() commands.RegisterInput {
	return commands.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     r.Role,
	}
}

// RefreshRequest is optional; the refresh cookie takes precedence.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
