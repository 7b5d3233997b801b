package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

func newAuthFixture(t *testing.T) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(nil, nil, AuthConfig{
		OperatorUsername:     "operator",
		OperatorPasswordHash: string(hash),
		TokenSecret:          "test-signing-secret",
		TokenExpiry:          time.Hour,
	})
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	service := newAuthFixture(t)

	resp, err := service.Login(dto.LoginRequest{Username: "operator", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.Login(dto.LoginRequest{Username: "operator", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginWrongUsername(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.Login(dto.LoginRequest{Username: "admin", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnconfigured(t *testing.T) {
	service := NewAuthService(nil, nil, AuthConfig{OperatorUsername: "operator", TokenSecret: "x"})

	_, err := service.Login(dto.LoginRequest{Username: "operator", Password: "anything"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.Login(dto.LoginRequest{Username: "operator"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRoundtrip(t *testing.T) {
	service := newAuthFixture(t)

	resp, err := service.Login(dto.LoginRequest{Username: "operator", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "uni-timetable-api", claims.Issuer)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := newAuthFixture(t)
	resp, err := issuer.Login(dto.LoginRequest{Username: "operator", Password: "s3cret-pass"})
	require.NoError(t, err)

	verifier := NewAuthService(nil, nil, AuthConfig{
		OperatorUsername:     "operator",
		OperatorPasswordHash: "unused",
		TokenSecret:          "a-different-secret",
	})
	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
