package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/usecases"
	"sarb.backend/pkg/crypto"
	"sarb.backend/pkg/jwt"
	redispkg "sarb.backend/pkg/redis"
)

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
}

func staffUser(t *testing.T, password string) *entities.User {
	t.Helper()
	hashed, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return &entities.User{ID: 7, Username: "admin", Email: "admin@sarb.ai", PasswordHash: hashed, IsStaff: true, IsActive: true}
}

func TestAuthUsecase_Login_InvalidCredentialCases(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(userRepo, newJWT(), nil)

	userRepo.On("GetByUsername", ctx, "missing").Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.Login(ctx, &entities.LoginInput{Username: "missing", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	userRepo.On("GetByUsername", ctx, "admin").Return(staffUser(t, "correct-password"), nil).Once()
	_, err = uc.Login(ctx, &entities.LoginInput{Username: "admin", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	inactive := staffUser(t, "correct-password")
	inactive.IsActive = false
	userRepo.On("GetByUsername", ctx, "admin").Return(inactive, nil).Once()
	_, err = uc.Login(ctx, &entities.LoginInput{Username: "admin", Password: "correct-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInactiveUser)

	userRepo.On("GetByUsername", ctx, "broken").Return(nil, errors.New("db down")).Once()
	_, err = uc.Login(ctx, &entities.LoginInput{Username: "broken", Password: "x"})
	assert.EqualError(t, err, "db down")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	jwtSvc := newJWT()
	uc := usecases.NewAuthUsecase(userRepo, jwtSvc, nil)

	user := staffUser(t, "correct-password")
	userRepo.On("GetByUsername", ctx, "admin").Return(user, nil).Once()
	userRepo.On("TouchLastLogin", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(errors.New("ignored")).Once()

	resp, err := uc.Login(ctx, &entities.LoginInput{Username: "admin", Password: "correct-password"})
	require.NoError(t, err)
	assert.Equal(t, user, resp.User)

	claims, err := jwtSvc.ValidateToken(resp.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.True(t, claims.IsStaff)

	_, err = jwtSvc.ValidateRefreshToken(resp.Refresh)
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Refresh(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	jwtSvc := newJWT()
	uc := usecases.NewAuthUsecase(userRepo, jwtSvc, nil)

	pair, err := jwtSvc.GenerateTokenPair(jwt.Subject{UserID: 7, Username: "admin", IsStaff: true})
	require.NoError(t, err)

	userRepo.On("GetByID", ctx, int64(7)).Return(staffUser(t, "pw"), nil).Once()
	resp, err := uc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)
	assert.Empty(t, resp.Refresh)

	_, err = uc.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = uc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	userRepo.On("GetByID", ctx, int64(7)).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.Refresh(ctx, pair.Refresh)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Authenticate_Expired(t *testing.T) {
	expired := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken(jwt.Subject{UserID: 1})
	require.NoError(t, err)

	uc := usecases.NewAuthUsecase(new(MockUserRepository), newJWT(), nil)
	_, err = uc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthUsecase_LogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	denylist := redispkg.NewTokenDenylist(redispkg.NewStore(client))

	ctx := context.Background()
	jwtSvc := newJWT()
	uc := usecases.NewAuthUsecase(new(MockUserRepository), jwtSvc, denylist)

	token, err := jwtSvc.GenerateAccessToken(jwt.Subject{UserID: 7, Username: "admin", IsStaff: true})
	require.NoError(t, err)

	claims, err := uc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims))
	assert.Greater(t, mr.TTL("auth:revoked:"+claims.ID), time.Duration(0))

	_, err = uc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenRevoked)
}

func TestAuthUsecase_DenylistFailureDoesNotLockOut(t *testing.T) {
	ctx := context.Background()
	revoker := new(MockTokenRevoker)
	jwtSvc := newJWT()
	uc := usecases.NewAuthUsecase(new(MockUserRepository), jwtSvc, revoker)

	token, err := jwtSvc.GenerateAccessToken(jwt.Subject{UserID: 7})
	require.NoError(t, err)

	revoker.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, errors.New("redis down")).Once()
	claims, err := uc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	revoker.On("Revoke", ctx, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 14*time.Minute && ttl <= 15*time.Minute
	})).Return(nil).Once()
	require.NoError(t, uc.Logout(ctx, claims))
	revoker.AssertExpectations(t)
}

func TestAuthUsecase_Me(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(userRepo, newJWT(), nil)

	inactive := &entities.User{ID: 3, IsActive: false}
	userRepo.On("GetByID", ctx, int64(3)).Return(inactive, nil).Once()
	_, err := uc.Me(ctx, 3)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	active := &entities.User{ID: 4, Username: "ana", IsActive: true}
	userRepo.On("GetByID", ctx, int64(4)).Return(active, nil).Once()
	got, err := uc.Me(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)
}
