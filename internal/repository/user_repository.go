package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vaultbank/api/internal/models"
)

// UserRepository serves user reads and password updates. User creation runs
// through the Store's transaction handle because it writes the profile in the
// same transaction.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail fetches the full write model, including PasswordHash, for login.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// GetViewByID returns a user with the profile joined in.
func (r *UserRepository) GetViewByID(ctx context.Context, id int64) (*models.UserView, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at,
		       p.id, p.user_id, p.profile_type, p.profile_number, p.address
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`
	var view models.UserView
	var profile models.Profile
	var profileID sql.NullInt64
	var profileUserID sql.NullInt64
	var profileType, profileNumber, address sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Email, &view.CreatedAt,
		&profileID, &profileUserID, &profileType, &profileNumber, &address,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	if profileID.Valid {
		profile.ID = profileID.Int64
		profile.UserID = profileUserID.Int64
		profile.ProfileType = profileType.String
		profile.ProfileNumber = profileNumber.String
		profile.Address = address.String
		view.Profile = &profile
	}
	return &view, nil
}

// List returns all users with profiles.
func (r *UserRepository) List(ctx context.Context) ([]models.UserView, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at,
		       p.id, p.user_id, p.profile_type, p.profile_number, p.address
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		ORDER BY u.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var views []models.UserView
	for rows.Next() {
		var view models.UserView
		var profileID, profileUserID sql.NullInt64
		var profileType, profileNumber, address sql.NullString
		if err := rows.Scan(
			&view.ID, &view.Name, &view.Email, &view.CreatedAt,
			&profileID, &profileUserID, &profileType, &profileNumber, &address,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if profileID.Valid {
			view.Profile = &models.Profile{
				ID:            profileID.Int64,
				UserID:        profileUserID.Int64,
				ProfileType:   profileType.String,
				ProfileNumber: profileNumber.String,
				Address:       address.String,
			}
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password for user %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
	}
	return nil
}
