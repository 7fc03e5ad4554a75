package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/citymarket/citymarket/internal/domain/entity"
	repo "github.com/citymarket/citymarket/internal/domain/repository"
)

// ImageStore persists product image bytes and returns the stored
// asset reference.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// MerchantService owns the shop and product workflows. Every operation
// takes the acting merchant's account id and resolves their shop first,
// so products of other shops are unreachable by construction.
type MerchantService struct {
	Shops    repo.ShopRepository
	Products repo.ProductRepository
	Images   ImageStore
	Logger   *logrus.Logger
}

func NewMerchantService(shops repo.ShopRepository, products repo.ProductRepository, images ImageStore, logger *logrus.Logger) *MerchantService {
	return &MerchantService{Shops: shops, Products: products, Images: images, Logger: logger}
}

// ShopOf returns the merchant's shop, or ErrNoShop. Zero shops is a
// valid state for a merchant that registered but skipped shop setup.
func (s *MerchantService) ShopOf(ctx context.Context, merchantID string) (*entity.Shop, error) {
	shop, err := s.Shops.GetByMerchant(ctx, merchantID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoShop
		}
		return nil, err
	}
	return shop, nil
}

type RegisterShopInput struct {
	Name      string
	Phone     string
	Address   string
	City      string
	Latitude  float64
	Longitude float64
}

// RegisterShop creates the merchant's single shop. Uniqueness is enforced
// by the storage layer, so a concurrent duplicate surfaces here as
// ErrShopExists rather than slipping past a pre-check.
func (s *MerchantService) RegisterShop(ctx context.Context, merchantID string, in RegisterShopInput) (*entity.Shop, error) {
	if in.Name == "" {
		return nil, ErrMissingFields
	}
	shop := &entity.Shop{
		MerchantID: merchantID,
		Name:       in.Name,
		Phone:      in.Phone,
		Address:    in.Address,
		City:       in.City,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}
	if err := s.Shops.Create(ctx, shop); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, ErrShopExists
		}
		return nil, err
	}
	return shop, nil
}

type ProductImage struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type AddProductInput struct {
	Name        string
	Description string
	Price       string
	Image       *ProductImage
}

// AddProduct creates a product under the merchant's shop. All four
// fields are required.
func (s *MerchantService) AddProduct(ctx context.Context, merchantID string, in AddProductInput) (*entity.Product, error) {
	shop, err := s.ShopOf(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Description == "" || in.Price == "" || in.Image == nil {
		return nil, ErrMissingFields
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.uploadImage(ctx, shop.ID, in.Image)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		ShopID:      shop.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		ImageURL:    imageURL,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns all products of the merchant's shop.
func (s *MerchantService) ListProducts(ctx context.Context, merchantID string) ([]entity.Product, error) {
	shop, err := s.ShopOf(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return s.Products.ListByShop(ctx, shop.ID)
}

// GetProduct fetches one product, scoped to the merchant's shop. An id
// belonging to another shop yields ErrProductNotFound.
func (s *MerchantService) GetProduct(ctx context.Context, merchantID, productID string) (*entity.Product, error) {
	shop, err := s.ShopOf(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	p, err := s.Products.GetByShop(ctx, shop.ID, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

type EditProductInput struct {
	Name        string
	Description string
	Price       string
	Image       *ProductImage // nil keeps the stored image
}

// EditProduct updates name/description/price and optionally the image,
// preserving the product id and shop linkage. The shop scope travels in
// the update statement itself.
func (s *MerchantService) EditProduct(ctx context.Context, merchantID, productID string, in EditProductInput) (*entity.Product, error) {
	shop, err := s.ShopOf(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Description == "" || in.Price == "" {
		return nil, ErrMissingFields
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	imageURL := ""
	if in.Image != nil {
		if imageURL, err = s.uploadImage(ctx, shop.ID, in.Image); err != nil {
			return nil, err
		}
	}
	p := &entity.Product{
		ID:          productID,
		ShopID:      shop.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		ImageURL:    imageURL,
	}
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product only if it belongs to the merchant's
// shop; any other id is ErrProductNotFound.
func (s *MerchantService) DeleteProduct(ctx context.Context, merchantID, productID string) error {
	shop, err := s.ShopOf(ctx, merchantID)
	if err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, shop.ID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *MerchantService) uploadImage(ctx context.Context, shopID string, img *ProductImage) (string, error) {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	objectPath := filepath.ToSlash(filepath.Join("products", shopID, uuid.NewString()+ext))
	return s.Images.Upload(ctx, objectPath, img.ContentType, img.Reader)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return d.Round(2), nil
}
