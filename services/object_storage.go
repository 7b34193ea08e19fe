package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"hotelbooking/constants"
	"hotelbooking/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ObjectStorage stores uploaded hotel photos and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

var allowedPhotoFormats = []string{"jpg", "jpeg", "png", "webp"}

func IsAllowedPhoto(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	for _, f := range allowedPhotoFormats {
		if f == ext {
			return true
		}
	}
	return false
}

type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, folder: constants.UploadFolder}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if !IsAllowedPhoto(filename) {
		return "", errors.Validation("Only jpg, jpeg, png and webp images are allowed.")
	}
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         s.folder,
		AllowedFormats: api.CldAPIArray(allowedPhotoFormats),
	})
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeInternal, "Upload failed", err)
	}
	if resp.Error.Message != "" {
		return "", errors.NewAppError(errors.ErrCodeInternal, "Upload failed", fmt.Errorf("%s", resp.Error.Message))
	}
	return resp.SecureURL, nil
}

// MemoryStorage keeps uploads in memory. Used when Cloudinary is not configured.
type MemoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

func (s *MemoryStorage) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if !IsAllowedPhoto(filename) {
		return "", errors.Validation("Only jpg, jpeg, png and webp images are allowed.")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeInternal, "Upload failed", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s/%d-%s", constants.UploadFolder, len(s.files)+1, path.Base(filename))
	s.files[key] = data
	return "memory://" + key, nil
}
