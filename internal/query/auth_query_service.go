package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/mailer"
	"github.com/vaultbank/api/internal/middleware"
	"github.com/vaultbank/api/internal/repository"
	"github.com/vaultbank/api/internal/utils"
)

// ErrInvalidCredentials deliberately hides whether the email or the password
// was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

const (
	accessTokenTTL = time.Hour
	resetTokenTTL  = 5 * time.Minute
)

// AuthQueryService handles login and the forgot-password flow. Password
// resets mutate state and live in the command package instead.
type AuthQueryService struct {
	users       *repository.UserRepository
	mail        mailer.Mailer
	jwtSecret   []byte
	resetSecret []byte
	clientURL   string
}

func NewAuthQueryService(users *repository.UserRepository, mail mailer.Mailer, jwtSecret, resetSecret []byte, clientURL string) *AuthQueryService {
	return &AuthQueryService{
		users:       users,
		mail:        mail,
		jwtSecret:   jwtSecret,
		resetSecret: resetSecret,
		clientURL:   clientURL,
	}
}

// LoginResult carries the signed access token and the authenticated user id.
type LoginResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.generateToken(user.ID, user.Email, s.jwtSecret, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UserID: user.ID}, nil
}

// ForgotPassword emails the user a short-lived reset link. The reset token is
// signed with a secret distinct from the access-token secret, so an access
// token can never be replayed against the reset endpoint.
func (s *AuthQueryService) ForgotPassword(ctx context.Context, cmd cqrs.ForgotPasswordCommand) error {
	user, err := s.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return err
	}
	token, err := s.generateToken(user.ID, user.Email, s.resetSecret, resetTokenTTL)
	if err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.clientURL, token)
	return s.mail.Send(user.Email,
		"Password Reset Request",
		"Click the link to reset your password: "+resetURL)
}

func (s *AuthQueryService) generateToken(userID int64, email string, secret []byte, ttl time.Duration) (string, error) {
	claims := middleware.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
