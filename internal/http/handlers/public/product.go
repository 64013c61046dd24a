package public

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/solemart/solemart/internal/cache"
	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/repository"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

const productDetailCacheTTL = 60 * time.Second

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
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
		OnlyActive:   true,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取商品详情（按 ID 或 slug）
func (h *Handler) GetProduct(c *gin.Context) {
	key := strings.TrimSpace(c.Param("id"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	cacheKey := fmt.Sprintf("product:detail:%s", key)
	var cached service.ProductView
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	var (
		product *service.ProductView
		err     error
	)
	if id, parseErr := strconv.ParseUint(key, 10, 64); parseErr == nil && id > 0 {
		product, err = h.ProductService.GetByID(uint(id), true)
	} else {
		product, err = h.ProductService.GetBySlug(key, true)
	}
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), cacheKey, product, productDetailCacheTTL)
	response.Success(c, product)
}

// GetProductReviews 获取商品可见评价
func (h *Handler) GetProductReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	summary, err := h.ReviewService.ListByProduct(uint(productID), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, summary.Total)
	response.SuccessWithPage(c, summary, pagination)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}
