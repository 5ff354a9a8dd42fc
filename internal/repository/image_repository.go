package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vaultbank/api/internal/models"
)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (user_id, title, description, url, file_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		image.UserID, image.Title, image.Description, image.URL, image.FileID).
		Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create image record: %w", err)
	}
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	query := `
		SELECT id, user_id, title, description, url, file_id, created_at
		FROM images
		WHERE id = $1
	`
	var image models.Image
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&image.ID, &image.UserID, &image.Title, &image.Description,
		&image.URL, &image.FileID, &image.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("image with ID %d: %w", id, ErrImageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image %d: %w", id, err)
	}
	return &image, nil
}

func (r *ImageRepository) List(ctx context.Context) ([]models.Image, error) {
	query := `
		SELECT id, user_id, title, description, url, file_id, created_at
		FROM images
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var image models.Image
		if err := rows.Scan(
			&image.ID, &image.UserID, &image.Title, &image.Description,
			&image.URL, &image.FileID, &image.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *ImageRepository) Update(ctx context.Context, id int64, title, description string) (*models.Image, error) {
	query := `
		UPDATE images SET title = $2, description = $3
		WHERE id = $1
		RETURNING id, user_id, title, description, url, file_id, created_at
	`
	var image models.Image
	err := r.db.QueryRowContext(ctx, query, id, title, description).Scan(
		&image.ID, &image.UserID, &image.Title, &image.Description,
		&image.URL, &image.FileID, &image.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("image with ID %d: %w", id, ErrImageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update image %d: %w", id, err)
	}
	return &image, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("image with ID %d: %w", id, ErrImageNotFound)
	}
	return nil
}
