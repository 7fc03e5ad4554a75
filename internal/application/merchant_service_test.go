package application

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citymarket/citymarket/internal/domain/entity"
	repo "github.com/citymarket/citymarket/internal/domain/repository"
)

type fakeShopRepo struct {
	byMerchant map[string]*entity.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{byMerchant: map[string]*entity.Shop{}}
}

func (f *fakeShopRepo) Create(_ context.Context, s *entity.Shop) error {
	if _, ok := f.byMerchant[s.MerchantID]; ok {
		return repo.ErrDuplicateKey
	}
	s.ID = uuid.NewString()
	if s.City == "" {
		s.City = "Unknown"
	}
	s.CreatedAt = time.Now()
	f.byMerchant[s.MerchantID] = s
	return nil
}

func (f *fakeShopRepo) GetByMerchant(_ context.Context, merchantID string) (*entity.Shop, error) {
	s, ok := f.byMerchant[merchantID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByShop(_ context.Context, shopID, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok || p.ShopID != shopID {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) ListByShop(_ context.Context, shopID string) ([]entity.Product, error) {
	out := []entity.Product{}
	for _, p := range f.products {
		if p.ShopID == shopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	stored, ok := f.products[p.ID]
	if !ok || stored.ShopID != p.ShopID {
		return repo.ErrNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.Price = p.Price
	if p.ImageURL != "" {
		stored.ImageURL = p.ImageURL
	}
	stored.UpdatedAt = time.Now()
	p.ImageURL = stored.ImageURL
	p.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, shopID, id string) error {
	p, ok := f.products[id]
	if !ok || p.ShopID != shopID {
		return repo.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeImageStore struct {
	uploads int
}

func (f *fakeImageStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.uploads++
	return "https://storage.example.com/" + objectPath, nil
}

func newMerchantService() (*MerchantService, *fakeShopRepo, *fakeProductRepo, *fakeImageStore) {
	shops := newFakeShopRepo()
	products := newFakeProductRepo()
	images := &fakeImageStore{}
	return NewMerchantService(shops, products, images, logrus.New()), shops, products, images
}

func testImage() *ProductImage {
	return &ProductImage{Reader: strings.NewReader("png-bytes"), Filename: "shoe.png", ContentType: "image/png"}
}

func TestRegisterShop(t *testing.T) {
	svc, _, _, _ := newMerchantService()
	merchant := uuid.NewString()

	shop, err := svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Ada Shoes", City: "Lagos"})
	require.NoError(t, err)
	assert.NotEmpty(t, shop.ID)
	assert.Equal(t, merchant, shop.MerchantID)

	_, err = svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Second Shop"})
	assert.ErrorIs(t, err, ErrShopExists)
}

func TestRegisterShopRequiresName(t *testing.T) {
	svc, _, _, _ := newMerchantService()

	_, err := svc.RegisterShop(context.Background(), uuid.NewString(), RegisterShopInput{City: "Lagos"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAddProductWithoutShop(t *testing.T) {
	svc, _, _, _ := newMerchantService()

	_, err := svc.AddProduct(context.Background(), uuid.NewString(), AddProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	assert.ErrorIs(t, err, ErrNoShop)
}

func TestAddProduct(t *testing.T) {
	svc, _, _, images := newMerchantService()
	merchant := uuid.NewString()
	shop, err := svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Ada Shoes", City: "Lagos"})
	require.NoError(t, err)

	p, err := svc.AddProduct(context.Background(), merchant, AddProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	require.NoError(t, err)
	assert.Equal(t, shop.ID, p.ShopID)
	assert.Equal(t, "59.99", p.Price.StringFixed(2))
	assert.Contains(t, p.ImageURL, "products/"+shop.ID+"/")
	assert.Equal(t, 1, images.uploads)
}

func TestAddProductValidation(t *testing.T) {
	svc, _, _, _ := newMerchantService()
	merchant := uuid.NewString()
	_, err := svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Ada Shoes"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   AddProductInput
		want error
	}{
		{"no name", AddProductInput{Description: "d", Price: "1.00", Image: testImage()}, ErrMissingFields},
		{"no description", AddProductInput{Name: "n", Price: "1.00", Image: testImage()}, ErrMissingFields},
		{"no price", AddProductInput{Name: "n", Description: "d", Image: testImage()}, ErrMissingFields},
		{"no image", AddProductInput{Name: "n", Description: "d", Price: "1.00"}, ErrMissingFields},
		{"bad price", AddProductInput{Name: "n", Description: "d", Price: "abc", Image: testImage()}, ErrInvalidPrice},
		{"negative price", AddProductInput{Name: "n", Description: "d", Price: "-5", Image: testImage()}, ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddProduct(context.Background(), merchant, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEditProductKeepsIdentityAndImage(t *testing.T) {
	svc, _, _, _ := newMerchantService()
	merchant := uuid.NewString()
	_, err := svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Ada Shoes"})
	require.NoError(t, err)

	created, err := svc.AddProduct(context.Background(), merchant, AddProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	require.NoError(t, err)

	edited, err := svc.EditProduct(context.Background(), merchant, created.ID, EditProductInput{
		Name: "Crimson Shoe", Description: "full leather", Price: "64.50",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, created.ShopID, edited.ShopID)
	assert.Equal(t, created.ImageURL, edited.ImageURL, "edit without a new file keeps the stored image")
	assert.Equal(t, "64.50", edited.Price.StringFixed(2))
}

func TestEditProductReplacesImageWhenProvided(t *testing.T) {
	svc, _, _, images := newMerchantService()
	merchant := uuid.NewString()
	_, err := svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Ada Shoes"})
	require.NoError(t, err)

	created, err := svc.AddProduct(context.Background(), merchant, AddProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	require.NoError(t, err)

	edited, err := svc.EditProduct(context.Background(), merchant, created.ID, EditProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, created.ImageURL, edited.ImageURL)
	assert.Equal(t, 2, images.uploads)
}

func TestProductOwnershipIsolation(t *testing.T) {
	svc, _, _, _ := newMerchantService()
	owner := uuid.NewString()
	other := uuid.NewString()
	_, err := svc.RegisterShop(context.Background(), owner, RegisterShopInput{Name: "Ada Shoes"})
	require.NoError(t, err)
	_, err = svc.RegisterShop(context.Background(), other, RegisterShopInput{Name: "Grace Bags"})
	require.NoError(t, err)

	p, err := svc.AddProduct(context.Background(), owner, AddProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), other, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.EditProduct(context.Background(), other, p.ID, EditProductInput{Name: "x", Description: "y", Price: "1.00"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = svc.DeleteProduct(context.Background(), other, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	got, err := svc.GetProduct(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Red Shoe", got.Name)
}

func TestDeleteProduct(t *testing.T) {
	svc, _, _, _ := newMerchantService()
	merchant := uuid.NewString()
	_, err := svc.RegisterShop(context.Background(), merchant, RegisterShopInput{Name: "Ada Shoes"})
	require.NoError(t, err)

	p, err := svc.AddProduct(context.Background(), merchant, AddProductInput{
		Name: "Red Shoe", Description: "leather", Price: "59.99", Image: testImage(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), merchant, p.ID))

	list, err := svc.ListProducts(context.Background(), merchant)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.DeleteProduct(context.Background(), merchant, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
