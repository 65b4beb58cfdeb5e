package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
	"freelance-backend/internal/store"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return NewUserService(repositories.NewUserRepository(st))
}

func TestSignupFirstUserBecomesAdmin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, &models.SignupRequest{
		Name: "Erika", Email: "erika@example.ch", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	second, err := svc.Signup(ctx, &models.SignupRequest{
		Name: "Hans", Email: "hans@example.ch", Password: "battery staple",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", second.Role)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &models.SignupRequest{
		Name: "Erika", Email: "erika@example.ch", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &models.SignupRequest{
		Name: "Other", Email: "Erika@Example.ch", Password: "something else",
	})
	assert.Error(t, err)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Signup(context.Background(), &models.SignupRequest{
		Name: "Erika", Email: "erika@example.ch", Password: "short",
	})
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, &models.SignupRequest{
		Name: "Erika", Email: "erika@example.ch", Password: "correct horse",
	})
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "erika@example.ch", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "erika@example.ch", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = svc.Authenticate(ctx, "nobody@example.ch", "correct horse")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthenticateSuspendedAccount(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, &models.SignupRequest{
		Name: "Erika", Email: "erika@example.ch", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.ToggleActive(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "erika@example.ch", "correct horse")
	assert.Error(t, err)
}
