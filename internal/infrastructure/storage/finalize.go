package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinalizedImage is the outcome of moving one staged upload into the
// permanent image area.
type FinalizedImage struct {
	Token string // the staging token that was consumed
	URL   string // public URL of the stored file
}

// Finalize moves staged uploads into the product's image directory.
// Each file gets a fresh random name so staging tokens never become
// permanent identifiers.
//
// Failures are handled per token: a missing staged file is skipped, any
// other failure deletes the staged file, and in both cases the batch
// continues. The result preserves input order and may be shorter than
// the token list. The database is never touched here.
func (s *ImageStore) Finalize(ctx context.Context, partnerID, productID uint, tokens []string) ([]FinalizedImage, error) {
	if err := s.EnsureProductDir(partnerID, productID); err != nil {
		return nil, err
	}

	finalized := make([]FinalizedImage, 0, len(tokens))
	for _, token := range tokens {
		src, err := s.TempPath(token)
		if err != nil {
			s.logger.Warn("Dropping invalid staging token", zap.String("token", token))
			continue
		}

		if _, err := os.Stat(src); os.IsNotExist(err) {
			// Already finalized by a concurrent request, or reaped
			s.logger.Warn("Staged file missing, skipping",
				zap.String("token", token),
				zap.Uint("partner_id", partnerID),
				zap.Uint("product_id", productID),
			)
			continue
		}

		filename := uuid.New().String() + filepath.Ext(token)
		dst, err := s.ImagePath(partnerID, productID, filename)
		if err == nil {
			err = os.Rename(src, dst)
		}
		if err != nil {
			s.logger.Error("Failed to finalize staged file, discarding",
				zap.String("token", token),
				zap.Uint("partner_id", partnerID),
				zap.Uint("product_id", productID),
				zap.Error(err),
			)
			_ = os.Remove(src)
			continue
		}

		url, err := s.ImageURL(partnerID, productID, filename)
		if err != nil {
			_ = os.Remove(dst)
			continue
		}
		finalized = append(finalized, FinalizedImage{Token: token, URL: url})
	}

	return finalized, nil
}

// Discard removes just-finalized images by URL. It compensates a
// database rollback after Finalize and is strictly best effort.
func (s *ImageStore) Discard(urls []string) {
	for _, url := range urls {
		if err := s.Remove(url); err != nil {
			s.logger.Warn("Failed to discard finalized image", zap.String("url", url), zap.Error(err))
		}
	}
}

// RemoveProductDir deletes a product's whole image directory. Used
// after the product row is gone; best effort.
func (s *ImageStore) RemoveProductDir(partnerID, productID uint) error {
	dir, err := s.productDir(partnerID, productID)
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}
