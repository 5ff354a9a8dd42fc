package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/middleware"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

// maxImageSize caps uploads at 5 MiB.
const maxImageSize = 5 << 20

// MediaCommander defines the write-side operations used by MediaHandler.
type MediaCommander interface {
	UploadImage(ctx context.Context, cmd cqrs.UploadImageCommand) (*models.Image, error)
	UpdateImage(ctx context.Context, cmd cqrs.UpdateImageCommand) (*models.Image, error)
	DeleteImage(ctx context.Context, id int64) error
}

// MediaQuerier defines the read-side operations used by MediaHandler.
type MediaQuerier interface {
	GetImage(ctx context.Context, q cqrs.GetImageQuery) (*models.Image, error)
	ListImages(ctx context.Context) ([]models.Image, error)
}

type MediaHandler struct {
	commands MediaCommander
	queries  MediaQuerier
}

type UpdateImageRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func NewMediaHandler(commands MediaCommander, queries MediaQuerier) *MediaHandler {
	return &MediaHandler{commands: commands, queries: queries}
}

func (h *MediaHandler) UploadImage(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Missing image file")
		return
	}
	if fileHeader.Size > maxImageSize {
		middleware.RespondWithError(c, http.StatusBadRequest, "Image exceeds maximum size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to read image")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to read image")
		return
	}

	image, err := h.commands.UploadImage(c.Request.Context(), cqrs.UploadImageCommand{
		UserID:      claims.UserID,
		FileName:    fileHeader.Filename,
		Description: c.PostForm("description"),
		Content:     content,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *MediaHandler) ListImages(c *gin.Context) {
	images, err := h.queries.ListImages(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get images")
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *MediaHandler) GetImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	image, err := h.queries.GetImage(c.Request.Context(), cqrs.GetImageQuery{ImageID: id})
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Image not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get image")
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *MediaHandler) UpdateImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	image, err := h.commands.UpdateImage(c.Request.Context(), cqrs.UpdateImageCommand{
		ImageID:     id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Image not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update image")
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *MediaHandler) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := h.commands.DeleteImage(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Image not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image successfully deleted"})
}
