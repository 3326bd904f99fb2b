package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/storage"
)

const (
	maxImageWidth  = 1600
	maxImageHeight = 1600
	thumbWidth     = 400
	thumbHeight    = 300
)

// UploadInput describes one uploaded image and its constraints.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UploaderID   string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = any image type
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage, log *zap.Logger) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		log:     log.Named("file"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Upload validates the image, stores a resized JPEG and a thumbnail and records
// the metadata. Stored objects are removed again if recording fails.
func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	if in.FileHeader == nil {
		return nil, ErrMissingFileHeader
	}
	if in.MaxSizeBytes > 0 && in.FileHeader.Size > in.MaxSizeBytes {
		return nil, ErrTooLarge.Detail("limit is %d bytes", in.MaxSizeBytes)
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	contentType := http.DetectContentType(fileBytes)
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType.Detail("got %s", contentType)
	}

	resized, err := s.imgProc.Fit(bytes.NewReader(fileBytes), maxImageWidth, maxImageHeight)
	if err != nil {
		return nil, ErrInvalidImage
	}

	fileID := uuid.New().String()

	// Sharding path: upload/ab/UUID.jpg
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s.jpg", shard, fileID)

	if err := s.storage.Save(ctx, storagePath, resized); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	thumb, err := s.imgProc.Thumbnail(bytes.NewReader(fileBytes), thumbWidth, thumbHeight)
	if err == nil {
		tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
		if err := s.storage.Save(ctx, tPath, thumb); err == nil {
			thumbnailPath = &tPath
		} else {
			s.log.Warn("save thumbnail failed", zap.String("fileID", fileID), zap.Error(err))
		}
	} else {
		s.log.Warn("generate thumbnail failed", zap.String("fileID", fileID), zap.Error(err))
	}

	f := &File{
		ID:            fileID,
		UploaderID:    in.UploaderID,
		Filename:      in.FileHeader.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   "image/jpeg",
		Size:          int64(resized.Len()),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObjects(ctx, f)
		return nil, err
	}

	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.removeObjects(ctx, f)
	return s.repo.Delete(ctx, id)
}

func (s *service) removeObjects(ctx context.Context, f *File) {
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		s.log.Warn("delete stored file failed", zap.String("path", f.StoragePath), zap.Error(err))
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			s.log.Warn("delete stored thumbnail failed", zap.String("path", *f.ThumbnailPath), zap.Error(err))
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Open(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailMissing
	}

	stream, err := s.storage.Open(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, f, nil
}
