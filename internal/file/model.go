package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "file not found")
	ErrThumbnailMissing  = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrTooLarge          = apperror.New(http.StatusRequestEntityTooLarge, "file too large")
	ErrUnsupportedType   = apperror.New(http.StatusUnsupportedMediaType, "unsupported file type")
	ErrInvalidImage      = apperror.New(http.StatusBadRequest, "file is not a valid image")
	ErrMissingFileHeader = apperror.New(http.StatusBadRequest, "file is required")
)

// File is the metadata of an uploaded boat photo.
type File struct {
	ID            string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
