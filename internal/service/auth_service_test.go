package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func newAuthService(t *testing.T, secret string) (*service.AuthService, *gormDeps) {
	t.Helper()
	db := newTestDB(t)
	deps := &gormDeps{db: db, userRepo: repository.NewUserRepository(db)}
	return service.NewAuthService(deps.userRepo, secret, time.Hour), deps
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "+33600000001", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	loggedIn, token, err := svc.Login(ctx, "+33600000001", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	verified, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestAuthRegisterDuplicatePhone(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "+33600000001", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Imposter", "+33600000001", "other")
	assert.ErrorIs(t, err, service.ErrPhoneTaken)

	_, err = svc.Register(ctx, "", "+33600000002", "x")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "+33600000001", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "+33600000001", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "+33600000099", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthVerifyTokenRejectsForeignSignature(t *testing.T) {
	svc, deps := newAuthService(t, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "+33600000001", "s3cret")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "+33600000001", "s3cret")
	require.NoError(t, err)

	other := service.NewAuthService(deps.userRepo, "different-secret", time.Hour)
	_, err = other.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthVerifyTokenRejectsExpired(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := service.NewAuthService(userRepo, "test-secret", -time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "+33600000001", "s3cret")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "+33600000001", "s3cret")
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "+33600000001", "s3cret")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	// The phone number is identity; it never changes through the profile.
	assert.Equal(t, "+33600000001", updated.PhoneNumber)

	_, err = svc.UpdateProfile(ctx, user.ID, "   ")
	assert.ErrorIs(t, err, service.ErrNameRequired)

	_, err = svc.UpdateProfile(ctx, 9999, "Ghost")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
