package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveFlashSaleRequest 抢购活动写入请求
type SaveFlashSaleRequest struct {
	ProductID       uint         `json:"product_id" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	DiscountPercent models.Money `json:"discount_percent"`
	Quantity        int          `json:"quantity" binding:"required"`
	StartAt         time.Time    `json:"start_at" binding:"required"`
	EndAt           time.Time    `json:"end_at" binding:"required"`
	IsActive        bool         `json:"is_active"`
}

func (r SaveFlashSaleRequest) toInput() service.SaveFlashSaleInput {
	return service.SaveFlashSaleInput{
		ProductID:       r.ProductID,
		Name:            r.Name,
		DiscountPercent: r.DiscountPercent,
		Quantity:        r.Quantity,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		IsActive:        r.IsActive,
	}
}

func respondFlashSaleSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFlashSaleNotFound):
		respondError(c, response.CodeNotFound, "error.flash_sale_not_found", nil)
	case errors.Is(err, service.ErrFlashSaleInvalid):
		respondError(c, response.CodeBadRequest, "error.flash_sale_invalid", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.flash_sale_save_failed", err)
	}
}

// AdminListFlashSales 管理端抢购活动列表
func (h *Handler) AdminListFlashSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isActive = &parsed
	}

	sales, total, err := h.FlashSaleService.List(repository.FlashSaleListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		IsActive:  isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.flash_sale_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, sales, pagination)
}

// AdminGetFlashSale 管理端抢购活动详情
func (h *Handler) AdminGetFlashSale(c *gin.Context) {
	saleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || saleID == 0 {
		respondError(c, response.CodeBadRequest, "error.flash_sale_not_found", nil)
		return
	}

	sale, err := h.FlashSaleService.GetByID(uint(saleID))
	if err != nil {
		if errors.Is(err, service.ErrFlashSaleNotFound) {
			respondError(c, response.CodeNotFound, "error.flash_sale_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.flash_sale_fetch_failed", err)
		return
	}

	response.Success(c, sale)
}

// AdminCreateFlashSale 管理端创建抢购活动
func (h *Handler) AdminCreateFlashSale(c *gin.Context) {
	var req SaveFlashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	sale, err := h.FlashSaleService.Create(req.toInput())
	if err != nil {
		respondFlashSaleSaveError(c, err)
		return
	}

	response.Success(c, sale)
}

// AdminUpdateFlashSale 管理端更新抢购活动
func (h *Handler) AdminUpdateFlashSale(c *gin.Context) {
	saleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || saleID == 0 {
		respondError(c, response.CodeBadRequest, "error.flash_sale_not_found", nil)
		return
	}

	var req SaveFlashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	sale, err := h.FlashSaleService.Update(uint(saleID), req.toInput())
	if err != nil {
		respondFlashSaleSaveError(c, err)
		return
	}

	response.Success(c, sale)
}

// AdminDeleteFlashSale 管理端删除抢购活动
func (h *Handler) AdminDeleteFlashSale(c *gin.Context) {
	saleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || saleID == 0 {
		respondError(c, response.CodeBadRequest, "error.flash_sale_not_found", nil)
		return
	}

	if err := h.FlashSaleService.Delete(uint(saleID)); err != nil {
		if errors.Is(err, service.ErrFlashSaleNotFound) {
			respondError(c, response.CodeNotFound, "error.flash_sale_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.flash_sale_save_failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
