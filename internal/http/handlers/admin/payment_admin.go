package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequest 管理端补录支付记录请求
type CreatePaymentRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

// UpdatePaymentStatusRequest 支付状态更新请求
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminCreatePayment 管理端为订单补录支付记录
func (h *Handler) AdminCreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	payment, err := h.PaymentService.Create(service.CreatePaymentInput{
		OrderID: req.OrderID,
		Method:  req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		case errors.Is(err, service.ErrPaymentExists):
			respondError(c, response.CodeBadRequest, "error.payment_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.payment_save_failed", err)
		}
		return
	}

	response.Success(c, payment)
}

// AdminUpdatePaymentStatus 管理端更新支付状态
func (h *Handler) AdminUpdatePaymentStatus(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, response.CodeBadRequest, "error.payment_not_found", nil)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	payment, err := h.PaymentService.UpdateStatus(uint(paymentID), strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			respondError(c, response.CodeNotFound, "error.payment_not_found", nil)
		case errors.Is(err, service.ErrPaymentStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.payment_status_invalid", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.payment_save_failed", err)
		}
		return
	}

	response.Success(c, payment)
}

// AdminGetOrderPayment 管理端查看订单支付记录
func (h *Handler) AdminGetOrderPayment(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	payment, err := h.PaymentService.GetByOrder(uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			respondError(c, response.CodeNotFound, "error.payment_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.payment_save_failed", err)
		return
	}

	response.Success(c, payment)
}
