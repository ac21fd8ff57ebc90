package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/infrastructure/storage"
	"ecotrack/pkg/errors"
	"ecotrack/pkg/logger"
	"ecotrack/pkg/response"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedUploadFolders = map[string]bool{
	"eco-actions": true,
	"badges":      true,
	"avatars":     true,
}

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

var fileHandler *FileHandler

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func (h *FileHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > maxUploadSize {
		return response.Error(c, errors.BadRequest(
			fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxUploadSize/(1024*1024)), nil))
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "eco-actions"
	}
	if !allowedUploadFolders[folder] {
		return response.Error(c, errors.BadRequest("Unknown upload folder", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadImage(c.Request().Context(), src, file.Header.Get("Content-Type"), folder)
	if err != nil {
		logger.Error("Upload failed for %s: %v", file.Filename, err)
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"url": url})
}

func (h *FileHandler) DeleteImage(c echo.Context) error {
	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.storageClient.DeleteImage(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "File deleted"})
}
