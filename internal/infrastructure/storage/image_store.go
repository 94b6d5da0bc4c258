package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// AllowedImageTypes maps permitted file extensions to their content types.
// A file is accepted only when both its extension and its declared
// content type appear here.
var AllowedImageTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const (
	tempDir   = "temp"
	imagesDir = "images"
)

// StagedFile identifies an upload sitting in the temp area
type StagedFile struct {
	Token string `json:"token"` // "<uuid><ext>", also the filename in temp/
	URL   string `json:"url"`   // public preview URL under the temp prefix
}

// ImageStore owns the on-disk image area: a flat temp/ directory for
// staged uploads and images/{partnerID}/{productID}/ for committed
// files. It never touches the database.
type ImageStore struct {
	root        string
	baseURL     string
	maxFileSize int64
	logger      *zap.Logger
}

// NewImageStore creates the store and its temp directory
func NewImageStore(cfg config.UploadConfig, logger *zap.Logger) (*ImageStore, error) {
	root := filepath.Clean(cfg.Root)
	if err := os.MkdirAll(filepath.Join(root, tempDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(root, imagesDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &ImageStore{
		root:        root,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		maxFileSize: cfg.MaxFileSize,
		logger:      logger,
	}, nil
}

// Root returns the base directory holding temp/ and images/
func (s *ImageStore) Root() string {
	return s.root
}

// Stage validates and writes an upload into the temp area under a
// fresh random name. No database row is written; the returned token is
// the only handle to the file.
func (s *ImageStore) Stage(ctx context.Context, r io.Reader, originalName, contentType string) (*StagedFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := AllowedImageTypes[ext]; !ok {
		return nil, shared.ErrUnsupportedMediaType
	}
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return nil, shared.ErrUnsupportedMediaType
	}

	token := uuid.New().String() + ext
	path := filepath.Join(s.root, tempDir, token)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}

	// Copy one byte past the cap so an oversized upload is detectable
	// without buffering it whole.
	written, err := io.Copy(dst, io.LimitReader(r, s.maxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write staged file: %w", err)
	}
	if written > s.maxFileSize {
		_ = os.Remove(path)
		return nil, shared.ErrPayloadTooLarge
	}

	s.logger.Debug("Staged image upload",
		zap.String("token", token),
		zap.Int64("size", written),
		zap.String("content_type", contentType),
	)

	return &StagedFile{
		Token: token,
		URL:   s.baseURL + "/" + tempDir + "/" + token,
	}, nil
}

// TempPath resolves a staging token to its path in the temp area.
// Tokens are opaque filenames; anything that is not a plain allowed
// image filename is rejected.
func (s *ImageStore) TempPath(token string) (string, error) {
	if err := validateFilename(token); err != nil {
		return "", err
	}
	return filepath.Join(s.root, tempDir, token), nil
}

// ImagePath resolves a committed image's location on disk
func (s *ImageStore) ImagePath(partnerID, productID uint, filename string) (string, error) {
	dir, err := s.productDir(partnerID, productID)
	if err != nil {
		return "", err
	}
	if err := validateFilename(filename); err != nil {
		return "", err
	}
	return filepath.Join(dir, filename), nil
}

// ImageURL resolves a committed image's public URL
func (s *ImageStore) ImageURL(partnerID, productID uint, filename string) (string, error) {
	if partnerID == 0 || productID == 0 {
		return "", shared.NewDomainError("INVALID_IMAGE_PATH", "Partner and product ids must be positive")
	}
	if err := validateFilename(filename); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%d/%d/%s", s.baseURL, imagesDir, partnerID, productID, filename), nil
}

// EnsureProductDir creates the product's image directory if missing
func (s *ImageStore) EnsureProductDir(partnerID, productID uint) error {
	dir, err := s.productDir(partnerID, productID)
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Remove deletes a committed image by its public URL. Best effort: a
// missing file is not an error.
func (s *ImageStore) Remove(url string) error {
	path, err := s.pathFromURL(url)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *ImageStore) productDir(partnerID, productID uint) (string, error) {
	if partnerID == 0 || productID == 0 {
		return "", shared.NewDomainError("INVALID_IMAGE_PATH", "Partner and product ids must be positive")
	}
	return filepath.Join(s.root, imagesDir, fmt.Sprintf("%d", partnerID), fmt.Sprintf("%d", productID)), nil
}

// pathFromURL maps a public image URL back to its on-disk path
func (s *ImageStore) pathFromURL(url string) (string, error) {
	prefix := s.baseURL + "/" + imagesDir + "/"
	rel, ok := strings.CutPrefix(url, prefix)
	if !ok {
		return "", shared.NewDomainError("INVALID_IMAGE_PATH", "URL is not a stored image")
	}
	parts := strings.Split(rel, "/")
	if len(parts) != 3 {
		return "", shared.NewDomainError("INVALID_IMAGE_PATH", "URL is not a stored image")
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return "", shared.NewDomainError("INVALID_IMAGE_PATH", "URL is not a stored image")
		}
	}
	if err := validateFilename(parts[2]); err != nil {
		return "", err
	}
	return filepath.Join(s.root, imagesDir, parts[0], parts[1], parts[2]), nil
}

// validateFilename rejects traversal attempts and disallowed extensions
func validateFilename(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return shared.NewDomainError("INVALID_IMAGE_PATH", "Invalid image filename")
	}
	if _, ok := AllowedImageTypes[strings.ToLower(filepath.Ext(name))]; !ok {
		return shared.NewDomainError("INVALID_IMAGE_PATH", "Invalid image filename")
	}
	return nil
}
