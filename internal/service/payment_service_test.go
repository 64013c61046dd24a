package service

import (
	"errors"
	"testing"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"gorm.io/gorm"
)

func newPaymentServiceForTest(db *gorm.DB) *PaymentService {
	return NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewOrderRepository(db),
	)
}

// placePendingOrder 下一笔不带支付方式的待支付订单。
func placePendingOrder(t *testing.T, db *gorm.DB, fixture storeFixture) *models.Order {
	t.Helper()
	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestPaymentCreateTakesOrderAmount(t *testing.T) {
	db := newServiceTestDB(t, "payment_create")
	fixture := seedStore(t, db)
	order := placePendingOrder(t, db, fixture)
	paymentSvc := newPaymentServiceForTest(db)

	payment, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodBank})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if !payment.Amount.Equal(order.TotalAmount.Decimal) {
		t.Fatalf("expected amount %s, got %s", order.TotalAmount, payment.Amount)
	}
	if payment.Status != constants.PaymentStatusPending || payment.PaidAt != nil {
		t.Fatalf("unexpected payment state: %+v", payment)
	}

	// 每单至多一条
	if _, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCOD}); !errors.Is(err, ErrPaymentExists) {
		t.Fatalf("expected duplicate rejection, got: %v", err)
	}
}

func TestPaymentCreateValidations(t *testing.T) {
	db := newServiceTestDB(t, "payment_validate")
	fixture := seedStore(t, db)
	order := placePendingOrder(t, db, fixture)
	orderSvc := newOrderServiceForTest(db)
	paymentSvc := newPaymentServiceForTest(db)

	if _, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: "bitcoin"}); !errors.Is(err, ErrPaymentSaveFailed) {
		t.Fatalf("expected unknown method rejection, got: %v", err)
	}
	if _, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID + 100, Method: constants.PaymentMethodCOD}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected missing order rejection, got: %v", err)
	}

	// 已取消订单不能补录支付
	if _, err := orderSvc.CancelOrder(order.ID, fixture.user.ID); err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if _, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCOD}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected cancelled order rejection, got: %v", err)
	}
}

func TestPaymentCompletedAdvancesOrder(t *testing.T) {
	db := newServiceTestDB(t, "payment_complete")
	fixture := seedStore(t, db)
	order := placePendingOrder(t, db, fixture)
	paymentSvc := newPaymentServiceForTest(db)

	payment, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodEwallet})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	updated, err := paymentSvc.UpdateStatus(payment.ID, constants.PaymentStatusCompleted)
	if err != nil {
		t.Fatalf("complete payment failed: %v", err)
	}
	if updated.Status != constants.PaymentStatusCompleted || updated.PaidAt == nil {
		t.Fatalf("unexpected payment after completion: %+v", updated)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected order processing, got %s", reloaded.Status)
	}

	// 已完成的支付不能再改状态
	if _, err := paymentSvc.UpdateStatus(payment.ID, constants.PaymentStatusFailed); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected terminal state rejection, got: %v", err)
	}
}

func TestPaymentFailedLeavesOrderPending(t *testing.T) {
	db := newServiceTestDB(t, "payment_failed")
	fixture := seedStore(t, db)
	order := placePendingOrder(t, db, fixture)
	paymentSvc := newPaymentServiceForTest(db)

	payment, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCOD})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	updated, err := paymentSvc.UpdateStatus(payment.ID, constants.PaymentStatusFailed)
	if err != nil {
		t.Fatalf("fail payment failed: %v", err)
	}
	if updated.Status != constants.PaymentStatusFailed || updated.PaidAt != nil {
		t.Fatalf("unexpected payment after failure: %+v", updated)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("expected order still pending, got %s", reloaded.Status)
	}
}

func TestPaymentUpdateStatusUnknownTarget(t *testing.T) {
	db := newServiceTestDB(t, "payment_unknown")
	fixture := seedStore(t, db)
	order := placePendingOrder(t, db, fixture)
	paymentSvc := newPaymentServiceForTest(db)

	payment, err := paymentSvc.Create(CreatePaymentInput{OrderID: order.ID, Method: constants.PaymentMethodCOD})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if _, err := paymentSvc.UpdateStatus(payment.ID, "refunded"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected unknown target rejection, got: %v", err)
	}
}
