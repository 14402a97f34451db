package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	palaver_errors "palaver/pkg/errors"
)

func newAuthService(e *env) *AuthService {
	return NewAuthService(e.userRepo, testConfig())
}

func TestRegisterAccumulatesViolations(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        " ",
		Email:           "",
		Password:        "secret",
		ConfirmPassword: "different",
	})
	require.Error(t, err)
	assert.Equal(t, palaver_errors.KindInvalidArgument, palaver_errors.KindOf(err))

	fields := palaver_errors.FieldsOf(err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "confirmPassword")
	assert.NotContains(t, fields, "password")
}

func TestRegisterTakenUsername(t *testing.T) {
	e := newEnv(t)
	e.createUser(t, "alice")
	svc := newAuthService(e)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "new@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.Error(t, err)
	fields := palaver_errors.FieldsOf(err)
	assert.Equal(t, "username is taken", fields["username"])
}

func TestRegisterHashesPassword(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
}

func TestLoginRoundTrip(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	id, ok := svc.VerifyToken(context.Background(), result.Token)
	require.True(t, ok)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, result.User.ID, id.UserID)
}

func TestLoginUnknownUser(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	_, err := svc.Login(context.Background(), "nobody", "secret")
	require.Error(t, err)
	assert.Equal(t, palaver_errors.KindInvalidArgument, palaver_errors.KindOf(err))
	assert.Equal(t, "this user does not exist", palaver_errors.FieldsOf(err)["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, "incorrect password", palaver_errors.FieldsOf(err)["password"])
}

func TestLoginBlankFields(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	_, err := svc.Login(context.Background(), "", "")
	require.Error(t, err)
	fields := palaver_errors.FieldsOf(err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	_, ok := svc.VerifyToken(context.Background(), "not-a-token")
	assert.False(t, ok)

	_, ok = svc.VerifyToken(context.Background(), "")
	assert.False(t, ok)
}

func TestVerifyTokenUnknownSubject(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	// A valid signature for a user that no longer resolves.
	token, err := svc.signToken("ghost")
	require.NoError(t, err)

	_, ok := svc.VerifyToken(context.Background(), token)
	assert.False(t, ok)
}
