package admin

import (
	"errors"
	"strconv"

	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateShippingRequest 发货请求
type CreateShippingRequest struct {
	OrderID    uint   `json:"order_id" binding:"required"`
	Carrier    string `json:"carrier" binding:"required"`
	TrackingNo string `json:"tracking_no" binding:"required"`
}

// UpdateTrackingRequest 运单信息修正请求
type UpdateTrackingRequest struct {
	Carrier    string `json:"carrier"`
	TrackingNo string `json:"tracking_no"`
}

// AdminCreateShipping 管理端发货
func (h *Handler) AdminCreateShipping(c *gin.Context) {
	var req CreateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shipping, err := h.ShippingService.Create(service.CreateShippingInput{
		OrderID:    req.OrderID,
		Carrier:    req.Carrier,
		TrackingNo: req.TrackingNo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		case errors.Is(err, service.ErrShippingExists):
			respondError(c, response.CodeBadRequest, "error.shipping_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.shipping_save_failed", err)
		}
		return
	}

	response.Success(c, shipping)
}

// AdminMarkShippingDelivered 管理端标记签收
func (h *Handler) AdminMarkShippingDelivered(c *gin.Context) {
	shippingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || shippingID == 0 {
		respondError(c, response.CodeBadRequest, "error.shipping_not_found", nil)
		return
	}

	shipping, err := h.ShippingService.MarkDelivered(uint(shippingID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShippingNotFound):
			respondError(c, response.CodeNotFound, "error.shipping_not_found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.shipping_save_failed", err)
		}
		return
	}

	response.Success(c, shipping)
}

// AdminUpdateShippingTracking 管理端修正运单信息
func (h *Handler) AdminUpdateShippingTracking(c *gin.Context) {
	shippingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || shippingID == 0 {
		respondError(c, response.CodeBadRequest, "error.shipping_not_found", nil)
		return
	}

	var req UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shipping, err := h.ShippingService.UpdateTracking(uint(shippingID), req.Carrier, req.TrackingNo)
	if err != nil {
		if errors.Is(err, service.ErrShippingNotFound) {
			respondError(c, response.CodeNotFound, "error.shipping_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.shipping_save_failed", err)
		return
	}

	response.Success(c, shipping)
}

// AdminGetOrderShipping 管理端查看订单物流记录
func (h *Handler) AdminGetOrderShipping(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	shipping, err := h.ShippingService.GetByOrder(uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrShippingNotFound) {
			respondError(c, response.CodeNotFound, "error.shipping_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.shipping_save_failed", err)
		return
	}

	response.Success(c, shipping)
}
