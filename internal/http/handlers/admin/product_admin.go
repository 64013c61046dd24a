package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveProductSizeRequest 尺码写入请求
type SaveProductSizeRequest struct {
	Size        string       `json:"size" binding:"required"`
	Quantity    int          `json:"quantity"`
	PriceAmount models.Money `json:"price_amount"`
	SortOrder   int          `json:"sort_order"`
}

// SaveProductRequest 商品写入请求
type SaveProductRequest struct {
	CategoryID      uint                     `json:"category_id" binding:"required"`
	Slug            string                   `json:"slug" binding:"required"`
	Name            string                   `json:"name" binding:"required"`
	Description     string                   `json:"description"`
	PriceAmount     models.Money             `json:"price_amount"`
	DiscountPercent models.Money             `json:"discount_percent"`
	Images          []string                 `json:"images"`
	Tags            []string                 `json:"tags"`
	IsActive        bool                     `json:"is_active"`
	SortOrder       int                      `json:"sort_order"`
	Sizes           []SaveProductSizeRequest `json:"sizes"`
}

func (r SaveProductRequest) toInput() service.SaveProductInput {
	sizes := make([]service.SaveProductSizeInput, 0, len(r.Sizes))
	for _, size := range r.Sizes {
		sizes = append(sizes, service.SaveProductSizeInput{
			Size:        size.Size,
			Quantity:    size.Quantity,
			PriceAmount: size.PriceAmount,
			SortOrder:   size.SortOrder,
		})
	}
	return service.SaveProductInput{
		CategoryID:      r.CategoryID,
		Slug:            r.Slug,
		Name:            r.Name,
		Description:     r.Description,
		PriceAmount:     r.PriceAmount,
		DiscountPercent: r.DiscountPercent,
		Images:          r.Images,
		Tags:            r.Tags,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
		Sizes:           sizes,
	}
}

func respondProductSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
	case errors.Is(err, service.ErrSizeInvalid):
		respondError(c, response.CodeBadRequest, "error.size_invalid", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.product_save_failed", err)
	}
}

// AdminListProducts 管理端商品列表（含下架商品）
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       search,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// AdminCreateProduct 管理端创建商品
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductSaveError(c, err)
		return
	}

	response.Success(c, product)
}

// AdminUpdateProduct 管理端更新商品
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
		return
	}

	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(uint(productID), req.toInput())
	if err != nil {
		respondProductSaveError(c, err)
		return
	}

	response.Success(c, product)
}

// AdminDeleteProduct 管理端删除商品
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
		return
	}

	if err := h.ProductService.Delete(uint(productID)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_save_failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// AdminUpsertProductSize 管理端写入商品尺码库存
func (h *Handler) AdminUpsertProductSize(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
		return
	}

	var req SaveProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	size, err := h.ProductService.UpsertSize(uint(productID), service.SaveProductSizeInput{
		Size:        req.Size,
		Quantity:    req.Quantity,
		PriceAmount: req.PriceAmount,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondProductSaveError(c, err)
		return
	}

	response.Success(c, size)
}
