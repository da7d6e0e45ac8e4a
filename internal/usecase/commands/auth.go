package commands

import (
	"context"
	"log/slog"

	"wheelshare/internal/domain/auth"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/pkg/jwt"
	"wheelshare/internal/pkg/password"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/mock_auth.go -package=commandsmock

var (
	ErrEmailTaken           = errs.Define("email is already registered", errs.ErrValidation)
	ErrInvalidRefreshToken  = errs.Define("invalid refresh token", errs.ErrAuthorization)
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrPasswordHashingError = errs.New("password hashing failed")
)

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*LoginResult, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	hasher     *password.Hasher
	clock      clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	hasher *password.Hasher,
	clock clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		hasher:     hasher,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return nil, err
	}
	if !role.IsSelfRegistrable() {
		return nil, user.ErrRoleNotRegistrable
	}

	hash, err := a.hasher.Hash(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrPasswordHashingError)
	}

	u, err := user.NewUser(credentials.Email(), in.Name, hash, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "register user")
	}

	return a.issue(u.ID(), u.Role())
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, auth.ErrInvalidCredentials
	}

	account, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	result, err := a.issue(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, account.ID, a.clock.Now())
	})
	if err != nil {
		// login already succeeded; only the last_login stamp is lost
		slog.Warn("failed to update last login", "user_id", account.ID, "error", err.Error())
	}

	return result, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRefreshToken)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	// Validate user still exists and is active
	account, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, auth.ErrInactiveAccount
	}

	// role is re-read so that role changes apply on the next refresh
	result, err := a.issue(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return result.TokenPair, nil
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*LoginResult, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID: userID,
		Role:   role,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*queries.UserView, error) {
	account, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, auth.ErrInactiveAccount
	}

	if err := a.hasher.Compare(account.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return account, nil
}
