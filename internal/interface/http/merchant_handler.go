package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citymarket/citymarket/internal/application"
	"github.com/citymarket/citymarket/internal/domain/entity"
	"github.com/citymarket/citymarket/internal/interface/middleware"
	"github.com/citymarket/citymarket/pkg/response"
	"github.com/citymarket/citymarket/pkg/validation"
)

const viewProductsPath = "/merchant/view-products/"

type MerchantHandler struct {
	Svc    *application.MerchantService
	Logger *logrus.Logger
}

func NewMerchantHandler(svc *application.MerchantService, logger *logrus.Logger) *MerchantHandler {
	return &MerchantHandler{Svc: svc, Logger: logger}
}

type registerShopRequest struct {
	Name      string  `form:"name" json:"name" binding:"required,max=100"`
	Phone     string  `form:"phone" json:"phone" binding:"max=20"`
	Address   string  `form:"address" json:"address" binding:"max=255"`
	City      string  `form:"city" json:"city" binding:"max=100"`
	Latitude  float64 `form:"latitude" json:"latitude"`
	Longitude float64 `form:"longitude" json:"longitude"`
}

func shopJSON(s *entity.Shop) gin.H {
	return gin.H{
		"id":         s.ID,
		"name":       s.Name,
		"phone":      s.Phone,
		"address":    s.Address,
		"city":       s.City,
		"latitude":   s.Latitude,
		"longitude":  s.Longitude,
		"created_at": s.CreatedAt,
	}
}

func productJSON(p *entity.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"shop_id":     p.ShopID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"image_url":   p.ImageURL,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func (h *MerchantHandler) accountID(c *gin.Context) string {
	return c.GetString(middleware.CtxAccountIDKey)
}

// Dashboard GET /merchant/dashboard/
// Zero shops is a valid state, presented as has_shop=false.
func (h *MerchantHandler) Dashboard(c *gin.Context) {
	shop, err := h.Svc.ShopOf(c.Request.Context(), h.accountID(c))
	if err != nil {
		if errors.Is(err, application.ErrNoShop) {
			response.Success(c, http.StatusOK, gin.H{"has_shop": false}, "no shop registered yet", nil)
			return
		}
		h.Logger.WithError(err).Error("shop lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "dashboard unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"has_shop": true, "shop": shopJSON(shop)}, "merchant dashboard", nil)
}

// RegisterShopForm GET /merchant/register-shop/
func (h *MerchantHandler) RegisterShopForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"fields": []string{"name", "phone", "address", "city", "latitude", "longitude"},
	}, "shop registration form", nil)
}

// RegisterShop POST /merchant/register-shop/
func (h *MerchantHandler) RegisterShop(c *gin.Context) {
	var req registerShopRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	shop, err := h.Svc.RegisterShop(c.Request.Context(), h.accountID(c), application.RegisterShopInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrShopExists):
			response.Error[any](c, http.StatusConflict, "you have already registered a shop",
				map[string]any{"redirect": merchantDashboardPath})
		case errors.Is(err, application.ErrMissingFields):
			response.Error[any](c, http.StatusBadRequest, "all fields are required", nil)
		default:
			h.Logger.WithError(err).Error("shop registration failed")
			response.Error[any](c, http.StatusInternalServerError, "shop registration failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, shopJSON(shop), "shop registered successfully",
		map[string]any{"redirect": merchantDashboardPath})
}

// AddProductForm GET /merchant/add-product/
func (h *MerchantHandler) AddProductForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"fields": []string{"name", "description", "price", "image"},
	}, "add product form", nil)
}

// AddProduct POST /merchant/add-product/ (multipart)
func (h *MerchantHandler) AddProduct(c *gin.Context) {
	in := application.AddProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}
	img, file, err := openImage(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid image upload", nil)
		return
	}
	if file != nil {
		defer func() { _ = file.Close() }()
		in.Image = img
	}

	p, err := h.Svc.AddProduct(c.Request.Context(), h.accountID(c), in)
	if err != nil {
		h.productError(c, err, "add product failed")
		return
	}
	response.Success(c, http.StatusCreated, productJSON(p), "product added successfully",
		map[string]any{"redirect": viewProductsPath})
}

// ViewProducts GET /merchant/view-products/
func (h *MerchantHandler) ViewProducts(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context(), h.accountID(c))
	if err != nil {
		h.productError(c, err, "list products failed")
		return
	}
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"products": out}, "products", nil)
}

// DeleteProduct POST /merchant/view-products/ (product_id in body)
// Deleting an id that belongs to another merchant's shop is a 404, never
// a cross-shop mutation.
func (h *MerchantHandler) DeleteProduct(c *gin.Context) {
	productID := c.PostForm("product_id")
	if productID == "" {
		response.Error[any](c, http.StatusBadRequest, "product_id is required", nil)
		return
	}
	if err := h.Svc.DeleteProduct(c.Request.Context(), h.accountID(c), productID); err != nil {
		h.productError(c, err, "delete product failed")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted successfully",
		map[string]any{"redirect": viewProductsPath})
}

// EditProductForm GET /merchant/edit-product/:id/
func (h *MerchantHandler) EditProductForm(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), h.accountID(c), c.Param("id"))
	if err != nil {
		h.productError(c, err, "product lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productJSON(p)}, "edit product form", nil)
}

// EditProduct POST /merchant/edit-product/:id/ (multipart, image optional)
func (h *MerchantHandler) EditProduct(c *gin.Context) {
	in := application.EditProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}
	img, file, err := openImage(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid image upload", nil)
		return
	}
	if file != nil {
		defer func() { _ = file.Close() }()
		in.Image = img
	}

	p, err := h.Svc.EditProduct(c.Request.Context(), h.accountID(c), c.Param("id"), in)
	if err != nil {
		h.productError(c, err, "edit product failed")
		return
	}
	response.Success(c, http.StatusOK, productJSON(p), "product updated successfully",
		map[string]any{"redirect": viewProductsPath})
}

// openImage returns the optional "image" upload. A missing file is not an
// error here; required-ness is decided by the use case.
func openImage(c *gin.Context) (*application.ProductImage, multipart.File, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.ProductImage{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f, nil
}

func (h *MerchantHandler) productError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrNoShop):
		response.Error[any](c, http.StatusConflict, "you must register a shop first",
			map[string]any{"redirect": merchantDashboardPath})
	case errors.Is(err, application.ErrMissingFields):
		response.Error[any](c, http.StatusBadRequest, "all fields are required", nil)
	case errors.Is(err, application.ErrInvalidPrice):
		response.Error[any](c, http.StatusBadRequest, "price must be a non-negative number", nil)
	case errors.Is(err, application.ErrProductNotFound):
		response.Error[any](c, http.StatusNotFound, "product not found", nil)
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}
