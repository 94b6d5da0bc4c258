package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/storage"
)

// ImageFinalizer is the slice of the image store the product service
// needs: committing staged uploads and undoing that commit.
type ImageFinalizer interface {
	Finalize(ctx context.Context, partnerID, productID uint, tokens []string) ([]storage.FinalizedImage, error)
	Discard(urls []string)
	RemoveProductDir(partnerID, productID uint) error
}

// ProductInput carries a product create or update request. Images nil
// means "leave the image set alone"; an empty non-nil slice clears it.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	Stock         int
	CategoryID    *uint
	Status        catalog.ProductStatus
	Images        []catalog.ImageRef
}

// ProductService orchestrates partner-scoped product writes. Image
// finalization happens inside the same transaction as the row writes;
// when the transaction rolls back, files moved during it are removed
// again on a best-effort basis.
type ProductService struct {
	partnerRepo identity.PartnerRepository
	productRepo catalog.ProductRepository
	txScope     TransactionScope
	images      ImageFinalizer
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	partnerRepo identity.PartnerRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	images ImageFinalizer,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		txScope:     txScope,
		images:      images,
		logger:      logger,
	}
}

// resolvePartner maps a user account to its seller profile. Users
// without one get a 403, not a 404: the route exists, the role doesn't.
func (s *ProductService) resolvePartner(ctx context.Context, userID uint) (*identity.Partner, error) {
	partner, err := s.partnerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotPartner
		}
		return nil, err
	}
	return partner, nil
}

// Create creates a product for the calling user's partner, committing
// any staged images in the same transaction.
func (s *ProductService) Create(ctx context.Context, userID uint, input ProductInput) (*catalog.Product, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(partner.ID, input.Name, input.Price)
	if err != nil {
		return nil, err
	}
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	if input.Status != "" {
		product.Status = input.Status
	}
	if err := product.SetStock(input.Stock); err != nil {
		return nil, err
	}
	if err := product.SetDiscountPrice(input.DiscountPrice); err != nil {
		return nil, err
	}

	var finalized []string
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProductRepo().Create(ctx, product); err != nil {
			return err
		}
		if input.Images == nil {
			return nil
		}
		urls, justFinalized, err := s.commitImages(ctx, partner.ID, product.ID, input.Images)
		if err != nil {
			return err
		}
		finalized = justFinalized
		product.Images = catalog.BuildProductImages(product.ID, urls)
		return repos.ImageRepo().ReplaceForProduct(ctx, product.ID, product.Images)
	})
	if err != nil {
		// Files moved out of staging before the rollback are orphans now
		s.images.Discard(finalized)
		return nil, err
	}

	s.logger.Info("Product created",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("product_id", product.ID),
		zap.Int("images", len(product.Images)),
	)
	return product, nil
}

// Update rewrites a product owned by the calling user's partner. The
// image set is replaced only when the request carries one; committed
// URLs are kept first, newly finalized images are appended, and display
// order is renumbered densely with the first image as primary.
func (s *ProductService) Update(ctx context.Context, userID, productID uint, input ProductInput) (*catalog.Product, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDForPartner(ctx, partner.ID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.Price); err != nil {
		return nil, err
	}
	product.CategoryID = input.CategoryID
	if input.Status != "" {
		product.Status = input.Status
	}
	if err := product.SetStock(input.Stock); err != nil {
		return nil, err
	}
	if err := product.SetDiscountPrice(input.DiscountPrice); err != nil {
		return nil, err
	}

	var finalized []string
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProductRepo().Update(ctx, product); err != nil {
			return err
		}
		if input.Images == nil {
			return nil
		}
		urls, justFinalized, err := s.commitImages(ctx, partner.ID, product.ID, input.Images)
		if err != nil {
			return err
		}
		finalized = justFinalized
		product.Images = catalog.BuildProductImages(product.ID, urls)
		return repos.ImageRepo().ReplaceForProduct(ctx, product.ID, product.Images)
	})
	if err != nil {
		s.images.Discard(finalized)
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("product_id", product.ID),
		zap.Bool("images_replaced", input.Images != nil),
	)
	return product, nil
}

// commitImages resolves an ImageRef list to final URLs: committed URLs
// keep their relative order, and freshly finalized files are appended
// after them in upload order. Staged refs whose files went missing or
// failed to move simply drop out. The second return value lists only
// the URLs finalized by this call, so rollback compensation never
// touches previously committed images.
func (s *ProductService) commitImages(ctx context.Context, partnerID, productID uint, refs []catalog.ImageRef) (urls, justFinalized []string, err error) {
	tokens := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind == catalog.ImageRefStaged {
			tokens = append(tokens, ref.Token)
		}
	}

	if len(tokens) > 0 {
		finalized, err := s.images.Finalize(ctx, partnerID, productID, tokens)
		if err != nil {
			return nil, nil, err
		}
		justFinalized = make([]string, 0, len(finalized))
		for _, f := range finalized {
			justFinalized = append(justFinalized, f.URL)
		}
	}

	urls = make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind == catalog.ImageRefCommitted {
			urls = append(urls, ref.URL)
		}
	}
	urls = append(urls, justFinalized...)
	return urls, justFinalized, nil
}

// Delete removes a product owned by the calling user's partner, then
// clears its image directory best-effort.
func (s *ProductService) Delete(ctx context.Context, userID, productID uint) error {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.productRepo.DeleteForPartner(ctx, partner.ID, productID); err != nil {
		return err
	}

	if err := s.images.RemoveProductDir(partner.ID, productID); err != nil {
		s.logger.Warn("Failed to remove product image directory",
			zap.Uint("partner_id", partner.ID),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
	}

	s.logger.Info("Product deleted",
		zap.Uint("partner_id", partner.ID),
		zap.Uint("product_id", productID),
	)
	return nil
}

// GetOwn fetches a product owned by the calling user's partner
func (s *ProductService) GetOwn(ctx context.Context, userID, productID uint) (*catalog.Product, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.FindByIDForPartner(ctx, partner.ID, productID)
}

// ListOwn lists the calling user's partner products
func (s *ProductService) ListOwn(ctx context.Context, userID uint) ([]catalog.Product, error) {
	partner, err := s.resolvePartner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByPartner(ctx, partner.ID)
}
