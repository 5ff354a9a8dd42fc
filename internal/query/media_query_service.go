package query

import (
	"context"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

type MediaQueryService struct {
	images *repository.ImageRepository
}

func NewMediaQueryService(images *repository.ImageRepository) *MediaQueryService {
	return &MediaQueryService{images: images}
}

func (s *MediaQueryService) GetImage(ctx context.Context, q cqrs.GetImageQuery) (*models.Image, error) {
	return s.images.GetByID(ctx, q.ImageID)
}

func (s *MediaQueryService) ListImages(ctx context.Context) ([]models.Image, error) {
	return s.images.List(ctx)
}
