package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/events"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
	"github.com/vaultbank/api/internal/utils"
)

// UserCommandService handles signup and password changes.
type UserCommandService struct {
	users     *repository.UserRepository
	store     repository.TxRunner
	publisher EventPublisher
}

func NewUserCommandService(users *repository.UserRepository, store repository.TxRunner, publisher EventPublisher) *UserCommandService {
	return &UserCommandService{users: users, store: store, publisher: publisher}
}

// Signup creates a user together with their profile in one database
// transaction; a failure writing the profile rolls the user back too.
func (s *UserCommandService) Signup(ctx context.Context, cmd cqrs.SignupCommand) (*models.User, *models.Profile, error) {
	if _, err := s.users.GetByEmail(ctx, cmd.Email); err == nil {
		return nil, nil, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
	}
	profile := &models.Profile{
		ProfileType:   cmd.ProfileType,
		ProfileNumber: cmd.ProfileNumber,
		Address:       cmd.Address,
	}

	err = s.store.InTransaction(ctx, func(tx repository.Tx) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.CreateProfile(ctx, profile)
	})
	if err != nil {
		return nil, nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		}); err != nil {
			slog.Warn("Failed to publish user.created event", "error", err)
		}
	}
	return user, profile, nil
}

// ResetPassword stores a new bcrypt hash for the user.
func (s *UserCommandService) ResetPassword(ctx context.Context, cmd cqrs.ResetPasswordCommand) (*models.User, error) {
	user, err := s.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(cmd.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	return user, nil
}
