package admin

import (
	"errors"
	"strconv"

	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveCategoryRequest 分类写入请求
type SaveCategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

func (r SaveCategoryRequest) toInput() service.SaveCategoryInput {
	return service.SaveCategoryInput{
		Slug:      r.Slug,
		Name:      r.Name,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
	}
}

func respondCategorySaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrCategoryInvalid):
		respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.category_save_failed", err)
	}
}

// AdminListCategories 管理端分类列表
func (h *Handler) AdminListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}

// AdminCreateCategory 管理端创建分类
func (h *Handler) AdminCreateCategory(c *gin.Context) {
	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondCategorySaveError(c, err)
		return
	}

	response.Success(c, category)
}

// AdminUpdateCategory 管理端更新分类
func (h *Handler) AdminUpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
		return
	}

	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(uint(categoryID), req.toInput())
	if err != nil {
		respondCategorySaveError(c, err)
		return
	}

	response.Success(c, category)
}

// AdminDeleteCategory 管理端删除分类，仍有商品挂载时拒绝
func (h *Handler) AdminDeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(categoryID)); err != nil {
		respondCategorySaveError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
