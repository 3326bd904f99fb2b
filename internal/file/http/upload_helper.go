package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
	"github.com/nekogravitycat/boat-rental-backend/internal/file"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
)

// FileUploadConfig defines the configuration for image uploads.
type FileUploadConfig struct {
	FormFieldName string                                               // default: "file"
	MaxSizeBytes  int64                                                // 0 = no limit
	AllowedTypes  []string                                             // empty = any decodable image
	AfterUpload   func(ctx context.Context, f *file.File) (any, error) // result becomes the response data
}

// HandleFileUpload stores the uploaded image and runs the after-upload hook.
// The stored file is removed again if the hook fails.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		response.BadRequest(c, fieldName+" is required")
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UploaderID:   auth.GetUserID(c),
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		data, err := config.AfterUpload(c.Request.Context(), f)
		if err != nil {
			_ = h.fileService.Delete(c.Request.Context(), f.ID)
			response.Error(c, err)
			return
		}
		if data != nil {
			response.OK(c, http.StatusCreated, data)
			return
		}
	}

	response.OK(c, http.StatusCreated, NewFileUploadResponse(f))
}

func NewFileUploadResponse(f *file.File) FileUploadResponse {
	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}
	return FileUploadResponse{
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	}
}
