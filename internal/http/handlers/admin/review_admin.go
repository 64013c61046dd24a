package admin

import (
	"errors"
	"strconv"

	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/repository"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// SetReviewVisibilityRequest 评价可见性更新请求
type SetReviewVisibilityRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// AdminListReviews 管理端评价列表（含已隐藏）
func (h *Handler) AdminListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	rating, _ := strconv.Atoi(c.Query("rating"))

	reviews, total, err := h.ReviewService.ListForAdmin(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		UserID:    uint(userID),
		Rating:    rating,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, reviews, pagination)
}

// AdminSetReviewVisibility 管理端隐藏/恢复评价
func (h *Handler) AdminSetReviewVisibility(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "error.review_not_found", nil)
		return
	}

	var req SetReviewVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Hidden == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.SetVisibility(uint(reviewID), *req.Hidden)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "error.review_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.review_update_failed", err)
		return
	}

	response.Success(c, review)
}

// AdminDeleteReview 管理端删除评价
func (h *Handler) AdminDeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "error.review_not_found", nil)
		return
	}

	if err := h.ReviewService.Delete(uint(reviewID)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "error.review_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.review_update_failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
