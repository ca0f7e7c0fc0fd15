package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
	"preventivi/internal/handler"
	"preventivi/internal/service"
	"preventivi/mocks"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	input := service.RegisterInput{Email: "mario@rossi.it", Username: "mario", Password: "password123"}
	mockAuth.On("Register", mock.Anything, input).Return(&service.RegisterOutput{
		User:   &domain.User{ID: uuid.New(), Email: input.Email, Username: input.Username},
		Tokens: &service.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now()},
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "mario@rossi.it",
		"username": "mario",
		"password": "password123",
	})
	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	mockAuth.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
		Return(nil, domain.ErrDuplicateEmail)

	c, w := newContext(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "mario@rossi.it",
		"username": "mario",
		"password": "password123",
	})
	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", decodeResponse(t, w).Error.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	tokenPair := &service.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	mockAuth.On("Login", mock.Anything, service.LoginInput{
		Email:    "user@test.it",
		Password: "password123",
	}).Return(tokenPair, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "user@test.it",
		"password": "password123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	mockAuth.On("Login", mock.Anything, mock.AnythingOfType("service.LoginInput")).
		Return(nil, domain.ErrInvalidCredentials)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "user@test.it",
		"password": "wrongpassword",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "not-an-email",
	})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	mockAuth.On("RefreshToken", mock.Anything, "valid-refresh-token").Return(&service.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "valid-refresh-token",
	})
	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuth.AssertExpectations(t)
}
