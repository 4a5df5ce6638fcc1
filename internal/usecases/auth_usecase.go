package usecases

import (
	"context"
	"errors"
	"time"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/domain/repositories"
	"sarb.backend/pkg/crypto"
	"sarb.backend/pkg/jwt"
	"sarb.backend/pkg/logger"

	"go.uber.org/zap"
)

// TokenRevoker tracks logged out tokens by jti.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	revoker    TokenRevoker
	now        func() time.Time
}

// NewAuthUsecase creates a new auth usecase. revoker may be nil, in which
// case logout only forgets the token client side.
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, revoker TokenRevoker) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		revoker:    revoker,
		now:        time.Now,
	}
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.TokenResponse, error) {
	user, err := u.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	pair, err := u.jwtService.GenerateTokenPair(subjectOf(user))
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.TouchLastLogin(ctx, user.ID, u.now()); err != nil {
		logger.Warn(ctx, "Failed to record last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return &entities.TokenResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    user,
	}, nil
}

// Refresh issues a new access token for a valid refresh token.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.TokenResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenErr(err)
	}
	if err := u.checkRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}

	user, err := u.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	access, err := u.jwtService.GenerateAccessToken(subjectOf(user))
	if err != nil {
		return nil, err
	}
	return &entities.TokenResponse{Access: access}, nil
}

// Authenticate validates an access token and rejects revoked ones.
func (u *AuthUsecase) Authenticate(ctx context.Context, accessToken string) (*jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(accessToken)
	if err != nil {
		return nil, mapTokenErr(err)
	}
	if err := u.checkRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}

// Me returns the account behind an authenticated request.
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*entities.User, error) {
	return u.activeUser(ctx, userID)
}

// Logout revokes the presented access token until it would have expired.
func (u *AuthUsecase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if u.revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(u.now())
	return u.revoker.Revoke(ctx, claims.ID, ttl)
}

func (u *AuthUsecase) activeUser(ctx context.Context, id int64) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUnauthorized
	}
	return user, nil
}

func (u *AuthUsecase) checkRevoked(ctx context.Context, jti string) error {
	if u.revoker == nil {
		return nil
	}
	revoked, err := u.revoker.IsRevoked(ctx, jti)
	if err != nil {
		// Redis outages must not lock staff out.
		logger.Warn(ctx, "Token denylist lookup failed", zap.Error(err))
		return nil
	}
	if revoked {
		return domainerrors.ErrTokenRevoked
	}
	return nil
}

func subjectOf(user *entities.User) jwt.Subject {
	return jwt.Subject{UserID: user.ID, Username: user.Username, IsStaff: user.IsStaff}
}

func mapTokenErr(err error) error {
	if errors.Is(err, jwt.ErrExpiredToken) {
		return domainerrors.ErrTokenExpired
	}
	return domainerrors.ErrUnauthorized
}
