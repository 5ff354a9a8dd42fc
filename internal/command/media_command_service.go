package command

import (
	"context"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
	"github.com/vaultbank/api/internal/storage"
)

// MediaCommandService stores uploaded images and their metadata records.
type MediaCommandService struct {
	images *repository.ImageRepository
	files  storage.Store
}

func NewMediaCommandService(images *repository.ImageRepository, files storage.Store) *MediaCommandService {
	return &MediaCommandService{images: images, files: files}
}

func (s *MediaCommandService) UploadImage(ctx context.Context, cmd cqrs.UploadImageCommand) (*models.Image, error) {
	url, fileID, err := s.files.Save(cmd.FileName, cmd.Content)
	if err != nil {
		return nil, err
	}
	image := &models.Image{
		UserID:      cmd.UserID,
		Title:       cmd.FileName,
		Description: cmd.Description,
		URL:         url,
		FileID:      fileID,
	}
	if err := s.images.Create(ctx, image); err != nil {
		// The metadata insert failed; drop the orphaned file.
		_ = s.files.Remove(fileID)
		return nil, err
	}
	return image, nil
}

func (s *MediaCommandService) UpdateImage(ctx context.Context, cmd cqrs.UpdateImageCommand) (*models.Image, error) {
	return s.images.Update(ctx, cmd.ImageID, cmd.Title, cmd.Description)
}

func (s *MediaCommandService) DeleteImage(ctx context.Context, id int64) error {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Remove(image.FileID); err != nil {
		return err
	}
	return s.images.Delete(ctx, id)
}
