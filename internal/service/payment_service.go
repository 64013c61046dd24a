package service

import (
	"errors"
	"strings"
	"time"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"gorm.io/gorm"
)

// CreatePaymentInput 创建支付记录输入
type CreatePaymentInput struct {
	OrderID uint
	Method  string
}

// PaymentService 支付记录服务
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewPaymentService 创建支付服务
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// GetByOrder 获取订单的支付记录
func (s *PaymentService) GetByOrder(orderID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByOrder(orderID)
	if err != nil {
		return nil, ErrPaymentSaveFailed
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// Create 为订单补录支付记录，金额取订单总额。
// 每单至多一条，应用层查重之外还有存储层唯一索引兜底。
func (s *PaymentService) Create(input CreatePaymentInput) (*models.Payment, error) {
	method := strings.TrimSpace(input.Method)
	if !isKnownPaymentMethod(method) {
		return nil, ErrPaymentSaveFailed
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}

	existing, err := s.paymentRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, ErrPaymentSaveFailed
	}
	if existing != nil {
		return nil, ErrPaymentExists
	}

	payment := &models.Payment{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Method:  method,
		Status:  constants.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPaymentExists
		}
		return nil, ErrPaymentSaveFailed
	}
	return payment, nil
}

// UpdateStatus 更新支付状态。
// pending 可转 completed 或 failed；completed 置支付时间并推动订单进入处理中。
func (s *PaymentService) UpdateStatus(paymentID uint, targetStatus string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, ErrPaymentSaveFailed
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	target := strings.TrimSpace(targetStatus)
	if payment.Status == target {
		return payment, nil
	}
	if payment.Status != constants.PaymentStatusPending {
		return nil, ErrPaymentStatusInvalid
	}

	switch target {
	case constants.PaymentStatusCompleted:
		now := time.Now()
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			paymentRepo := s.paymentRepo.WithTx(tx)
			orderRepo := s.orderRepo.WithTx(tx)

			payment.Status = constants.PaymentStatusCompleted
			payment.PaidAt = &now
			if err := paymentRepo.Update(payment); err != nil {
				return err
			}
			affected, err := orderRepo.UpdateStatusFrom(payment.OrderID, constants.OrderStatusPending, constants.OrderStatusProcessing, nil)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrOrderStatusInvalid
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrOrderStatusInvalid) {
				return nil, ErrOrderStatusInvalid
			}
			return nil, ErrPaymentSaveFailed
		}
		return payment, nil
	case constants.PaymentStatusFailed:
		payment.Status = constants.PaymentStatusFailed
		if err := s.paymentRepo.Update(payment); err != nil {
			return nil, ErrPaymentSaveFailed
		}
		return payment, nil
	default:
		return nil, ErrPaymentStatusInvalid
	}
}
