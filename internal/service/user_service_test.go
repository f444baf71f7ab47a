package service_test

import (
	"context"
	"testing"

	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/config"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"github.com/liftworks/service-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createUserService(t *testing.T, db *gorm.DB) *service.UserService {
	t.Helper()
	tokens, err := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret:       "test-secret-not-for-production",
		Issuer:          "service-api-test",
		TokenTTLMinutes: 60,
	})
	require.NoError(t, err)
	return service.NewUserService(repository.NewUserRepository(db), tokens, zap.NewNop())
}

func TestUserService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createUserService(t, db)
	ctx := context.Background()

	t.Run("creates an active account with a hashed password", func(t *testing.T) {
		user, err := svc.Create(ctx, &domain.CreateUserRequest{
			Username: "ravi",
			Password: "s3cret-pass",
			FullName: "Ravi Kumar",
			Role:     string(domain.RoleTechnician),
		})
		require.NoError(t, err)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "s3cret-pass", user.HashedPassword)
	})

	t.Run("usernames are unique", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateUserRequest{
			Username: "taken",
			Password: "password1",
			Role:     string(domain.RoleAdmin),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &domain.CreateUserRequest{
			Username: "taken",
			Password: "password2",
			Role:     string(domain.RoleTechnician),
		})
		assert.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateUserRequest{
			Username: "odd",
			Password: "password",
			Role:     "superuser",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestUserService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createUserService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "ravi",
		Password: "correct-horse",
		FullName: "Ravi Kumar",
		Role:     string(domain.RoleTechnician),
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a bearer token", func(t *testing.T) {
		resp, err := svc.Login(ctx, &domain.LoginRequest{Username: "ravi", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "ravi", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &domain.LoginRequest{Username: "ravi", Password: "wrong"})
		assert.ErrorIs(t, err, service.ErrWrongCredentials)
	})

	t.Run("unknown username fails identically", func(t *testing.T) {
		_, err := svc.Login(ctx, &domain.LoginRequest{Username: "ghost", Password: "anything"})
		assert.ErrorIs(t, err, service.ErrWrongCredentials)
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		user, err := svc.Create(ctx, &domain.CreateUserRequest{
			Username: "dormant",
			Password: "still-valid",
			Role:     string(domain.RoleTechnician),
		})
		require.NoError(t, err)
		inactive := false
		_, err = svc.Update(ctx, user.ID, &domain.UpdateUserRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &domain.LoginRequest{Username: "dormant", Password: "still-valid"})
		assert.ErrorIs(t, err, service.ErrWrongCredentials)
	})
}

func TestUserService_ListTechnicians(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createUserService(t, db)
	ctx := context.Background()

	testutil.CreateTestAdmin(t, db)
	testutil.CreateTestTechnician(t, db, "Active Tech")
	inactive := testutil.CreateTestTechnician(t, db, "Inactive Tech")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	technicians, err := svc.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, "Active Tech", technicians[0].FullName)
}
