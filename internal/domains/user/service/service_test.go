package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profilemodel "memorial-backend/internal/domains/profile/model"
	profilerepo "memorial-backend/internal/domains/profile/repository"
	"memorial-backend/internal/domains/user/model"
	"memorial-backend/internal/domains/user/repository"
	"memorial-backend/pkg/jwt"
)

func newTestService() (UserService, profilerepo.ProfileRepository) {
	profiles := profilerepo.NewMemoryProfileRepository()
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewUserService(repository.NewMemoryUserRepository(), profiles, tokens), profiles
}

func registerReq() model.RegisterRequest {
	return model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "correct horse battery",
		Name:     "Jane Smith",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "correct horse battery", u.PasswordHash, "password must be stored hashed")

	result, err := svc.Login(ctx, model.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "jane@example.com", result.User.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeEmailTaken, userErr.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	req := registerReq()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeValidation, userErr.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, model.LoginRequest{Email: "jane@example.com", Password: "nope nope nope"})
	_, unknownEmail := svc.Login(ctx, model.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	var a, b *model.UserError
	require.ErrorAs(t, wrongPassword, &a)
	require.ErrorAs(t, unknownEmail, &b)
	assert.Equal(t, model.ErrCodeInvalidCredentials, a.Code)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
}

func TestDeleteAccountCascadesOwnedProfiles(t *testing.T) {
	svc, profiles := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	for _, slug := range []string{"mom", "dad"} {
		require.NoError(t, profiles.Create(ctx, &profilemodel.Profile{
			ID: "prof-" + slug, Slug: slug, Name: slug, CreatedBy: "jane@example.com",
		}))
	}
	require.NoError(t, profiles.Create(ctx, &profilemodel.Profile{
		ID: "prof-other", Slug: "other", Name: "Other", CreatedBy: "someone@example.com",
	}))

	result, err := svc.DeleteAccount(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, result.ProfilesDeleted)

	remaining, err := profiles.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "other", remaining[0].Slug)

	_, err = svc.GetByEmail(ctx, "jane@example.com")
	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeUserNotFound, userErr.Code)
}
