package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := NewMemoryRepository()
	return NewService(repo, store, zap.NewNop()), repo
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Upload: Stores Image And Thumbnail", func(t *testing.T) {
		svc, _ := newTestService(t)
		f, err := svc.Upload(ctx, UploadInput{
			FileHeader:   fileHeader(t, "boat.png", pngBytes(t, 64, 48)),
			UploaderID:   "admin",
			AllowedTypes: []string{"image/png"},
		})
		require.NoError(t, err)
		assert.Equal(t, "boat.png", f.Filename)
		assert.Equal(t, "image/jpeg", f.ContentType)
		require.NotNil(t, f.ThumbnailPath)

		stream, got, err := svc.Download(ctx, f.ID)
		require.NoError(t, err)
		defer stream.Close()
		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, f.ID, got.ID)
		assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])

		thumb, _, err := svc.DownloadThumbnail(ctx, f.ID)
		require.NoError(t, err)
		thumb.Close()
	})

	t.Run("Upload: Too Large", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Upload(ctx, UploadInput{
			FileHeader:   fileHeader(t, "boat.png", pngBytes(t, 32, 32)),
			MaxSizeBytes: 10,
		})
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("Upload: Unsupported Type", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Upload(ctx, UploadInput{
			FileHeader:   fileHeader(t, "notes.txt", []byte("just some text")),
			AllowedTypes: []string{"image/jpeg", "image/png"},
		})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Upload: Undecodable Image", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Upload(ctx, UploadInput{
			FileHeader: fileHeader(t, "broken.png", []byte("\x89PNG\r\n\x1a\nnot really")),
		})
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("Upload: Missing Header", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Upload(ctx, UploadInput{})
		assert.ErrorIs(t, err, ErrMissingFileHeader)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	f, err := svc.Upload(ctx, UploadInput{FileHeader: fileHeader(t, "boat.png", pngBytes(t, 16, 16))})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.ID))
	_, err = repo.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Download(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
