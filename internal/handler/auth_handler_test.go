package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/middleware"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/query"
	"github.com/vaultbank/api/internal/repository"
)

// ---- mock implementations ----

type mockUserCommander struct {
	signupFn func(cqrs.SignupCommand) (*models.User, *models.Profile, error)
	resetFn  func(cqrs.ResetPasswordCommand) (*models.User, error)
}

func (m *mockUserCommander) Signup(ctx context.Context, cmd cqrs.SignupCommand) (*models.User, *models.Profile, error) {
	if m.signupFn != nil {
		return m.signupFn(cmd)
	}
	return nil, nil, fmt.Errorf("not configured")
}

func (m *mockUserCommander) ResetPassword(ctx context.Context, cmd cqrs.ResetPasswordCommand) (*models.User, error) {
	if m.resetFn != nil {
		return m.resetFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockAuthQuerier struct {
	loginFn  func(cqrs.LoginCommand) (*query.LoginResult, error)
	forgotFn func(cqrs.ForgotPasswordCommand) error
}

func (m *mockAuthQuerier) Login(ctx context.Context, cmd cqrs.LoginCommand) (*query.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAuthQuerier) ForgotPassword(ctx context.Context, cmd cqrs.ForgotPasswordCommand) error {
	if m.forgotFn != nil {
		return m.forgotFn(cmd)
	}
	return fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuth(userID int64, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("authClaims", &middleware.Claims{UserID: userID, Email: email})
		c.Next()
	}
}

func newAuthTestRouter(cmds UserCommander, qrys AuthQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(cmds, qrys)
	auth := r.Group("/api/v1/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/whoami", fakeAuth(1, "ada@example.com"), h.WhoAmI)
	auth.POST("/forgot-password", fakeAuth(1, "ada@example.com"), h.ForgotPassword)
	auth.POST("/reset-password", fakeAuth(1, "ada@example.com"), h.ResetPassword)
	return r
}

// ---- test data ----

var testUser = &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
var testProfile = &models.Profile{ID: 1, UserID: 1, ProfileType: "personal"}

func signupBody() map[string]interface{} {
	return map[string]interface{}{
		"userName":      "Ada",
		"userEmail":     "ada@example.com",
		"userPassword":  "longenough123",
		"profileType":   "personal",
		"profileNumber": "PR-001",
		"address":       "12 Fleet St",
	}
}

// ---- tests ----

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		signupFn       func(cqrs.SignupCommand) (*models.User, *models.Profile, error)
		expectedStatus int
	}{
		{
			name: "success - create user with profile",
			body: signupBody(),
			signupFn: func(cmd cqrs.SignupCommand) (*models.User, *models.Profile, error) {
				return testUser, testProfile, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "bad request - email already registered",
			body: signupBody(),
			signupFn: func(cmd cqrs.SignupCommand) (*models.User, *models.Profile, error) {
				return nil, nil, repository.ErrEmailTaken
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - password too short",
			body: map[string]interface{}{
				"userName": "Ada", "userEmail": "ada@example.com", "userPassword": "short",
				"profileType": "personal", "profileNumber": "PR-001", "address": "12 Fleet St",
			},
			signupFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - invalid email",
			body: map[string]interface{}{
				"userName": "Ada", "userEmail": "not-an-email", "userPassword": "longenough123",
				"profileType": "personal", "profileNumber": "PR-001", "address": "12 Fleet St",
			},
			signupFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{},
			signupFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockUserCommander{signupFn: tt.signupFn}
			router := newAuthTestRouter(cmds, &mockAuthQuerier{})
			w := txDoRequest(router, http.MethodPost, "/api/v1/auth/signup", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		loginFn        func(cqrs.LoginCommand) (*query.LoginResult, error)
		expectedStatus int
	}{
		{
			name: "success - valid credentials",
			body: map[string]interface{}{"userEmail": "ada@example.com", "userPassword": "longenough123"},
			loginFn: func(cmd cqrs.LoginCommand) (*query.LoginResult, error) {
				return &query.LoginResult{Token: "signed.jwt.token", UserID: 1}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unauthorized - wrong password",
			body: map[string]interface{}{"userEmail": "ada@example.com", "userPassword": "wrongpassword"},
			loginFn: func(cmd cqrs.LoginCommand) (*query.LoginResult, error) {
				return nil, query.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unauthorized - unknown email",
			body: map[string]interface{}{"userEmail": "ghost@example.com", "userPassword": "longenough123"},
			loginFn: func(cmd cqrs.LoginCommand) (*query.LoginResult, error) {
				return nil, query.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad request - missing credentials",
			body:           map[string]interface{}{},
			loginFn:        nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockUserCommander{}, &mockAuthQuerier{loginFn: tt.loginFn})
			w := txDoRequest(router, http.MethodPost, "/api/v1/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestLogout(t *testing.T) {
	router := newAuthTestRouter(&mockUserCommander{}, &mockAuthQuerier{})
	w := txDoRequest(router, http.MethodPost, "/api/v1/auth/logout", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
}

func TestWhoAmI(t *testing.T) {
	router := newAuthTestRouter(&mockUserCommander{}, &mockAuthQuerier{})
	w := txDoRequest(router, http.MethodGet, "/api/v1/auth/whoami", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "ada@example.com") {
		t.Errorf("response missing authenticated email: %s", body)
	}
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name           string
		forgotFn       func(cqrs.ForgotPasswordCommand) error
		expectedStatus int
	}{
		{
			name:           "success - reset email sent",
			forgotFn:       func(cmd cqrs.ForgotPasswordCommand) error { return nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found - user no longer exists",
			forgotFn:       func(cmd cqrs.ForgotPasswordCommand) error { return repository.ErrUserNotFound },
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotEmail string
			qrys := &mockAuthQuerier{forgotFn: func(cmd cqrs.ForgotPasswordCommand) error {
				gotEmail = cmd.Email
				return tt.forgotFn(cmd)
			}}
			router := newAuthTestRouter(&mockUserCommander{}, qrys)
			w := txDoRequest(router, http.MethodPost, "/api/v1/auth/forgot-password", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			// The email comes from the token claims, never the body.
			if gotEmail != "ada@example.com" {
				t.Errorf("expected claims email, got %q", gotEmail)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		resetFn        func(cqrs.ResetPasswordCommand) (*models.User, error)
		expectedStatus int
	}{
		{
			name: "success - password updated",
			body: map[string]interface{}{"newPassword": "brandnewpassword"},
			resetFn: func(cmd cqrs.ResetPasswordCommand) (*models.User, error) {
				return testUser, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - new password too short",
			body:           map[string]interface{}{"newPassword": "short"},
			resetFn:        nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found - user no longer exists",
			body: map[string]interface{}{"newPassword": "brandnewpassword"},
			resetFn: func(cmd cqrs.ResetPasswordCommand) (*models.User, error) {
				return nil, repository.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockUserCommander{resetFn: tt.resetFn}
			router := newAuthTestRouter(cmds, &mockAuthQuerier{})
			w := txDoRequest(router, http.MethodPost, "/api/v1/auth/reset-password", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
