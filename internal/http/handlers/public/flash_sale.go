package public

import (
	"time"

	"github.com/solemart/solemart/internal/cache"
	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	flashSaleListCacheKey = "flash_sales:active"
	flashSaleListCacheTTL = 30 * time.Second
)

// GetFlashSales 获取当前生效的抢购活动
func (h *Handler) GetFlashSales(c *gin.Context) {
	var cached []service.FlashSaleView
	if hit, err := cache.GetJSON(c.Request.Context(), flashSaleListCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	sales, err := h.FlashSaleService.ListActive()
	if err != nil {
		respondError(c, response.CodeInternal, "error.flash_sale_fetch_failed", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), flashSaleListCacheKey, sales, flashSaleListCacheTTL)
	response.Success(c, sales)
}
