package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/logger"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/queue"
	"github.com/solemart/solemart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID          uint
	ShippingAddress string
	Note            string
	PaymentMethod   string
}

// orderLinePlan 单条订单明细的下单计划
type orderLinePlan struct {
	Detail      models.OrderDetail
	FlashSaleID uint
	BasePrice   decimal.Decimal
}

// OrderService 订单服务
type OrderService struct {
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	productSizeRepo repository.ProductSizeRepository
	flashSaleRepo   repository.FlashSaleRepository
	paymentRepo     repository.PaymentRepository
	shippingRepo    repository.ShippingRepository
	queueClient     *queue.Client
	expireMinutes   int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, productSizeRepo repository.ProductSizeRepository, flashSaleRepo repository.FlashSaleRepository, paymentRepo repository.PaymentRepository, shippingRepo repository.ShippingRepository, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		productSizeRepo: productSizeRepo,
		flashSaleRepo:   flashSaleRepo,
		paymentRepo:     paymentRepo,
		shippingRepo:    shippingRepo,
		queueClient:     queueClient,
		expireMinutes:   expireMinutes,
	}
}

// CreateOrder 从购物车创建订单。
// 订单、明细、扣库存、抢购配额、清空购物车在同一事务内完成，
// 任何一项库存不足则整单失败，不产生部分扣减。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderCreateFailed
	}
	address := strings.TrimSpace(input.ShippingAddress)
	if address == "" {
		return nil, ErrOrderCreateFailed
	}
	method := strings.TrimSpace(input.PaymentMethod)
	if method != "" && !isKnownPaymentMethod(method) {
		return nil, ErrPaymentSaveFailed
	}

	cart, err := s.cartRepo.GetOrCreateByUser(input.UserID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	plans, totalAmount, discountAmount, err := s.buildLinePlans(items, now)
	if err != nil {
		return nil, err
	}

	orderNo, err := s.uniqueOrderNo()
	if err != nil {
		return nil, ErrOrderCreateFailed
	}

	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		TotalAmount:     models.NewMoneyFromDecimal(totalAmount),
		DiscountAmount:  models.NewMoneyFromDecimal(discountAmount),
		ShippingAddress: address,
		Note:            strings.TrimSpace(input.Note),
		OrderDate:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		sizeRepo := s.productSizeRepo.WithTx(tx)
		saleRepo := s.flashSaleRepo.WithTx(tx)

		details := make([]models.OrderDetail, 0, len(plans))
		for _, plan := range plans {
			details = append(details, plan.Detail)
		}
		if err := orderRepo.Create(order, details); err != nil {
			return err
		}

		for _, plan := range plans {
			affected, err := sizeRepo.DecrementStock(plan.Detail.ProductID, plan.Detail.Size, plan.Detail.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s (%s)", ErrStockInsufficient, plan.Detail.ProductName, plan.Detail.Size)
			}
			if plan.FlashSaleID != 0 {
				// 配额占满时不阻断下单，只是该单不再计入活动销量
				affected, err := saleRepo.IncrementSold(plan.FlashSaleID, plan.Detail.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					logger.Warnw("flash_sale_quota_exhausted",
						"flash_sale_id", plan.FlashSaleID,
						"order_no", order.OrderNo,
						"quantity", plan.Detail.Quantity,
					)
				}
			}
		}

		if method != "" {
			paymentRepo := s.paymentRepo.WithTx(tx)
			payment := &models.Payment{
				OrderID: order.ID,
				Amount:  order.TotalAmount,
				Method:  method,
				Status:  constants.PaymentStatusPending,
			}
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
			order.Payment = payment
		}

		return cartRepo.ClearByCart(cart.ID)
	})
	if err != nil {
		if errors.Is(err, ErrStockInsufficient) {
			return nil, err
		}
		return nil, ErrOrderCreateFailed
	}

	if s.queueClient != nil && s.expireMinutes > 0 {
		delay := time.Duration(s.expireMinutes) * time.Minute
		if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{OrderID: order.ID}, delay); err != nil {
			logger.Errorw("order_enqueue_timeout_cancel_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// buildLinePlans 将购物车项换算为订单明细计划，校验商品与尺码有效性。
// 单价取加入购物车时的快照价，优惠金额为基础价与快照价的差额合计。
func (s *OrderService) buildLinePlans(items []models.CartItem, now time.Time) ([]orderLinePlan, decimal.Decimal, decimal.Decimal, error) {
	plans := make([]orderLinePlan, 0, len(items))
	totalAmount := decimal.Zero
	discountAmount := decimal.Zero

	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, decimal.Zero, decimal.Zero, ErrProductFetchFailed
			}
			product = p
		}
		if product == nil || !product.IsActive {
			return nil, decimal.Zero, decimal.Zero, ErrProductNotFound
		}
		size, err := s.productSizeRepo.GetByProductAndSize(item.ProductID, item.Size)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, ErrProductFetchFailed
		}
		if size == nil {
			return nil, decimal.Zero, decimal.Zero, ErrSizeInvalid
		}
		if item.Quantity <= 0 {
			return nil, decimal.Zero, decimal.Zero, ErrQuantityInvalid
		}
		if item.Quantity > size.Quantity {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s (%s)", ErrStockInsufficient, product.Name, item.Size)
		}

		sale, err := s.flashSaleRepo.GetActiveByProduct(item.ProductID, now)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, ErrProductFetchFailed
		}

		quantity := decimal.NewFromInt(int64(item.Quantity))
		unitPrice := item.PriceAtTime.Decimal
		subtotal := unitPrice.Mul(quantity)
		basePrice := resolveBasePrice(product, size)
		lineDiscount := basePrice.Sub(unitPrice).Mul(quantity)
		if lineDiscount.IsNegative() {
			lineDiscount = decimal.Zero
		}

		plan := orderLinePlan{
			Detail: models.OrderDetail{
				ProductID:   product.ID,
				ProductName: product.Name,
				Size:        item.Size,
				Quantity:    item.Quantity,
				UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
				Subtotal:    models.NewMoneyFromDecimal(subtotal),
			},
			BasePrice: basePrice,
		}
		if sale != nil {
			plan.FlashSaleID = sale.ID
			saleID := sale.ID
			plan.Detail.FlashSaleID = &saleID
		}
		plans = append(plans, plan)

		totalAmount = totalAmount.Add(subtotal)
		discountAmount = discountAmount.Add(lineDiscount)
	}

	return plans, totalAmount, discountAmount, nil
}

// GetOrderByUser 获取用户自己的订单详情
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderFetchFailed
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// ListOrdersForAdmin 后台订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// GetOrderForAdmin 后台订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByNoForAdmin 后台按订单号精确查询订单详情
func (s *OrderService) GetOrderByNoForAdmin(orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder 用户取消订单，仅待支付状态允许。
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.cancelOrder(order); err != nil {
		if errors.Is(err, ErrOrderStatusInvalid) {
			return nil, ErrOrderStatusInvalid
		}
		return nil, ErrOrderCancelFailed
	}
	return s.GetOrderByUser(orderID, userID)
}

// CancelExpiredOrder 取消支付超时的订单，由队列消费端调用。
// 订单已离开待支付状态时静默跳过。
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return order, nil
	}
	if err := s.cancelOrder(order); err != nil {
		if errors.Is(err, ErrOrderStatusInvalid) {
			return order, nil
		}
		return nil, ErrOrderCancelFailed
	}
	return s.orderRepo.GetByID(orderID)
}

// cancelOrder 在事务内取消订单并补偿库存、抢购配额与待支付记录。
// 任何非终态订单均可取消；状态更新带前置条件，并发竞争时只有一方生效。
func (s *OrderService) cancelOrder(order *models.Order) error {
	if order.Status == constants.OrderStatusDelivered || order.Status == constants.OrderStatusCancelled {
		return ErrOrderStatusInvalid
	}
	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		sizeRepo := s.productSizeRepo.WithTx(tx)
		saleRepo := s.flashSaleRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		affected, err := orderRepo.UpdateStatusFrom(order.ID, order.Status, constants.OrderStatusCancelled, map[string]interface{}{
			"canceled_at": now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderStatusInvalid
		}

		details, err := orderRepo.ListDetails(order.ID)
		if err != nil {
			return err
		}
		for _, detail := range details {
			if _, err := sizeRepo.RestoreStock(detail.ProductID, detail.Size, detail.Quantity); err != nil {
				return err
			}
			if detail.FlashSaleID != nil {
				if _, err := saleRepo.DecrementSold(*detail.FlashSaleID, detail.Quantity); err != nil {
					return err
				}
			}
		}

		payment, err := paymentRepo.GetByOrder(order.ID)
		if err != nil {
			return err
		}
		if payment != nil && payment.Status == constants.PaymentStatusPending {
			payment.Status = constants.PaymentStatusFailed
			if err := paymentRepo.Update(payment); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateOrderStatus 管理端更新订单状态，按状态流转表校验。
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := strings.TrimSpace(targetStatus)
	if !isKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	if target == constants.OrderStatusCancelled {
		if err := s.cancelOrder(order); err != nil {
			if errors.Is(err, ErrOrderStatusInvalid) {
				return nil, ErrOrderStatusInvalid
			}
			return nil, ErrOrderCancelFailed
		}
		return s.orderRepo.GetByID(orderID)
	}

	affected, err := s.orderRepo.UpdateStatusFrom(order.ID, order.Status, target, nil)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if affected == 0 {
		return nil, ErrOrderStatusInvalid
	}
	return s.orderRepo.GetByID(orderID)
}

// AutoCompleteOrder 发货超期自动签收，由队列消费端调用。
// 订单不在配送中状态时静默跳过。
func (s *OrderService) AutoCompleteOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusShipping {
		return order, nil
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		shippingRepo := s.shippingRepo.WithTx(tx)

		affected, err := orderRepo.UpdateStatusFrom(order.ID, constants.OrderStatusShipping, constants.OrderStatusDelivered, nil)
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		shipping, err := shippingRepo.GetByOrder(order.ID)
		if err != nil {
			return err
		}
		if shipping != nil && shipping.Status != constants.ShippingStatusDelivered {
			shipping.Status = constants.ShippingStatusDelivered
			shipping.DeliveredAt = &now
			if err := shippingRepo.Update(shipping); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	return s.orderRepo.GetByID(orderID)
}

// uniqueOrderNo 生成订单号并查重，碰撞时重试。
func (s *OrderService) uniqueOrderNo() (string, error) {
	for i := 0; i < 5; i++ {
		orderNo := generateOrderNo()
		count, err := s.orderRepo.CountByOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return orderNo, nil
		}
	}
	return "", ErrOrderCreateFailed
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SM%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

func isKnownPaymentMethod(method string) bool {
	switch method {
	case constants.PaymentMethodCOD, constants.PaymentMethodBank, constants.PaymentMethodEwallet:
		return true
	default:
		return false
	}
}
