package service

import (
	"errors"
	"strings"
	"time"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/logger"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/queue"
	"github.com/solemart/solemart/internal/repository"

	"gorm.io/gorm"
)

// CreateShippingInput 创建物流记录输入
type CreateShippingInput struct {
	OrderID    uint
	Carrier    string
	TrackingNo string
}

// ShippingService 物流记录服务
type ShippingService struct {
	shippingRepo     repository.ShippingRepository
	orderRepo        repository.OrderRepository
	queueClient      *queue.Client
	autoCompleteDays int
}

// NewShippingService 创建物流服务
func NewShippingService(shippingRepo repository.ShippingRepository, orderRepo repository.OrderRepository, queueClient *queue.Client, autoCompleteDays int) *ShippingService {
	return &ShippingService{
		shippingRepo:     shippingRepo,
		orderRepo:        orderRepo,
		queueClient:      queueClient,
		autoCompleteDays: autoCompleteDays,
	}
}

// GetByOrder 获取订单的物流记录
func (s *ShippingService) GetByOrder(orderID uint) (*models.Shipping, error) {
	shipping, err := s.shippingRepo.GetByOrder(orderID)
	if err != nil {
		return nil, ErrShippingSaveFailed
	}
	if shipping == nil {
		return nil, ErrShippingNotFound
	}
	return shipping, nil
}

// Create 发货：创建物流记录并将订单推进到配送中。
// 仅处理中的订单可发货，每单至多一条物流记录。
func (s *ShippingService) Create(input CreateShippingInput) (*models.Shipping, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusProcessing {
		return nil, ErrOrderStatusInvalid
	}

	existing, err := s.shippingRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, ErrShippingSaveFailed
	}
	if existing != nil {
		return nil, ErrShippingExists
	}

	now := time.Now()
	shipping := &models.Shipping{
		OrderID:    order.ID,
		Carrier:    strings.TrimSpace(input.Carrier),
		TrackingNo: strings.TrimSpace(input.TrackingNo),
		Status:     constants.ShippingStatusShipping,
		ShippedAt:  &now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		shippingRepo := s.shippingRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		if err := shippingRepo.Create(shipping); err != nil {
			return err
		}
		affected, err := orderRepo.UpdateStatusFrom(order.ID, constants.OrderStatusProcessing, constants.OrderStatusShipping, nil)
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
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrShippingExists
		}
		return nil, ErrShippingSaveFailed
	}

	if s.queueClient != nil && s.autoCompleteDays > 0 {
		delay := time.Duration(s.autoCompleteDays) * 24 * time.Hour
		if err := s.queueClient.EnqueueOrderAutoComplete(queue.OrderAutoCompletePayload{OrderID: order.ID}, delay); err != nil {
			logger.Errorw("order_enqueue_auto_complete_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	}
	return shipping, nil
}

// MarkDelivered 签收：物流记录与订单同时进入已签收。
func (s *ShippingService) MarkDelivered(shippingID uint) (*models.Shipping, error) {
	shipping, err := s.shippingRepo.GetByID(shippingID)
	if err != nil {
		return nil, ErrShippingSaveFailed
	}
	if shipping == nil {
		return nil, ErrShippingNotFound
	}
	if shipping.Status == constants.ShippingStatusDelivered {
		return shipping, nil
	}
	if shipping.Status != constants.ShippingStatusShipping {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		shippingRepo := s.shippingRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		shipping.Status = constants.ShippingStatusDelivered
		shipping.DeliveredAt = &now
		if err := shippingRepo.Update(shipping); err != nil {
			return err
		}
		affected, err := orderRepo.UpdateStatusFrom(shipping.OrderID, constants.OrderStatusShipping, constants.OrderStatusDelivered, nil)
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
		return nil, ErrShippingSaveFailed
	}
	return shipping, nil
}

// UpdateTracking 修正承运商或运单号，不触碰状态。
func (s *ShippingService) UpdateTracking(shippingID uint, carrier, trackingNo string) (*models.Shipping, error) {
	shipping, err := s.shippingRepo.GetByID(shippingID)
	if err != nil {
		return nil, ErrShippingSaveFailed
	}
	if shipping == nil {
		return nil, ErrShippingNotFound
	}
	if carrier = strings.TrimSpace(carrier); carrier != "" {
		shipping.Carrier = carrier
	}
	if trackingNo = strings.TrimSpace(trackingNo); trackingNo != "" {
		shipping.TrackingNo = trackingNo
	}
	if err := s.shippingRepo.Update(shipping); err != nil {
		return nil, ErrShippingSaveFailed
	}
	return shipping, nil
}
