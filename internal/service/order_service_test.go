package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newServiceTestDB 打开独立的内存库并执行迁移，同时挂到全局 DB 供事务使用。
func newServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

type storeFixture struct {
	category models.Category
	product  models.Product
	sizeM    models.ProductSize
	sizeL    models.ProductSize
	user     models.User
}

// seedStore 写入一套基础数据：双尺码运动鞋与一名用户。
func seedStore(t *testing.T, db *gorm.DB) storeFixture {
	t.Helper()
	fixture := storeFixture{}

	fixture.category = models.Category{Slug: "sneakers", Name: "运动鞋"}
	if err := db.Create(&fixture.category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	fixture.product = models.Product{
		CategoryID:  fixture.category.ID,
		Slug:        "runner-pro",
		Name:        "Runner Pro",
		PriceAmount: models.NewMoneyFromInt(1000000),
		IsActive:    true,
	}
	if err := db.Create(&fixture.product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	fixture.sizeM = models.ProductSize{ProductID: fixture.product.ID, Size: "M", Quantity: 5}
	fixture.sizeL = models.ProductSize{ProductID: fixture.product.ID, Size: "L", Quantity: 3}
	if err := db.Create(&fixture.sizeM).Error; err != nil {
		t.Fatalf("create size M failed: %v", err)
	}
	if err := db.Create(&fixture.sizeL).Error; err != nil {
		t.Fatalf("create size L failed: %v", err)
	}

	fixture.user = models.User{Email: "buyer@example.com", Name: "buyer", PasswordHash: "x", IsActive: true}
	if err := db.Create(&fixture.user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return fixture
}

func seedFlashSale(t *testing.T, db *gorm.DB, productID uint, percent int64, quantity int) models.FlashSale {
	t.Helper()
	now := time.Now()
	sale := models.FlashSale{
		ProductID:       productID,
		Name:            "闪购",
		DiscountPercent: models.NewMoneyFromInt(percent),
		Quantity:        quantity,
		StartAt:         now.Add(-time.Hour),
		EndAt:           now.Add(time.Hour),
		IsActive:        true,
	}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("create flash sale failed: %v", err)
	}
	return sale
}

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewProductSizeRepository(db),
		repository.NewFlashSaleRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewShippingRepository(db),
		nil,
		30,
	)
}

func newCartServiceForTest(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewProductSizeRepository(db),
		repository.NewFlashSaleRepository(db),
	)
}

func sizeQuantity(t *testing.T, db *gorm.DB, sizeID uint) int {
	t.Helper()
	var size models.ProductSize
	if err := db.First(&size, sizeID).Error; err != nil {
		t.Fatalf("load size failed: %v", err)
	}
	return size.Quantity
}

func TestCreateOrderFromCartWithFlashSale(t *testing.T) {
	db := newServiceTestDB(t, "order_create_flash")
	fixture := seedStore(t, db)
	sale := seedFlashSale(t, db, fixture.product.ID, 20, 10)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}

	order, err := orderSvc.CreateOrder(CreateOrderInput{
		UserID:          fixture.user.ID,
		ShippingAddress: "东京都渋谷区1-2-3",
		PaymentMethod:   constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order no to be generated")
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected total 1600000, got %s", order.TotalAmount.String())
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(400000)) {
		t.Fatalf("expected discount 400000, got %s", order.DiscountAmount.String())
	}
	if len(order.Details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(order.Details))
	}
	detail := order.Details[0]
	if detail.ProductName != "Runner Pro" || detail.Size != "M" || detail.Quantity != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if !detail.UnitPrice.Equal(decimal.NewFromInt(800000)) {
		t.Fatalf("expected unit price 800000, got %s", detail.UnitPrice.String())
	}
	if !detail.Subtotal.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected subtotal 1600000, got %s", detail.Subtotal.String())
	}
	if detail.FlashSaleID == nil || *detail.FlashSaleID != sale.ID {
		t.Fatalf("expected flash sale id on detail, got %+v", detail.FlashSaleID)
	}

	if got := sizeQuantity(t, db, fixture.sizeM.ID); got != 3 {
		t.Fatalf("expected stock 3 after order, got %d", got)
	}
	var reloadedSale models.FlashSale
	if err := db.First(&reloadedSale, sale.ID).Error; err != nil {
		t.Fatalf("load sale failed: %v", err)
	}
	if reloadedSale.Sold != 2 {
		t.Fatalf("expected sold 2, got %d", reloadedSale.Sold)
	}

	if order.Payment == nil || order.Payment.Status != constants.PaymentStatusPending {
		t.Fatalf("expected pending payment record, got %+v", order.Payment)
	}
	if !order.Payment.Amount.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected payment amount 1600000, got %s", order.Payment.Amount.String())
	}

	cart, err := cartSvc.GetCart(fixture.user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cart cleared after order, got %d items", len(cart.Items))
	}
}

func TestCreateOrderSnapshotPriceSurvivesPriceChange(t *testing.T) {
	db := newServiceTestDB(t, "order_snapshot")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "L", Quantity: 1}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}

	// 下单前涨价，订单仍按加入购物车时的快照价结算
	if err := db.Model(&models.Product{}).Where("id = ?", fixture.product.ID).
		Update("price_amount", models.NewMoneyFromInt(2000000)).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(1000000)) {
		t.Fatalf("expected snapshot total 1000000, got %s", order.TotalAmount.String())
	}
}

func TestCreateOrderStockInsufficientFailsWholeOrder(t *testing.T) {
	db := newServiceTestDB(t, "order_stock_short")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add M failed: %v", err)
	}
	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "L", Quantity: 3}); err != nil {
		t.Fatalf("add L failed: %v", err)
	}

	// 加车后 L 码库存被其他订单买走，只剩 1 件
	if err := db.Model(&models.ProductSize{}).Where("id = ?", fixture.sizeL.ID).
		Update("quantity", 1).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}

	_, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got: %v", err)
	}
	// 错误需点名缺货的商品与尺码
	if !strings.Contains(err.Error(), "Runner Pro") || !strings.Contains(err.Error(), "(L)") {
		t.Fatalf("expected offending product in error, got: %v", err)
	}

	// 整单回滚：M 码库存不变，订单与明细均未落库
	if got := sizeQuantity(t, db, fixture.sizeM.ID); got != 5 {
		t.Fatalf("expected M stock 5 after rollback, got %d", got)
	}
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order persisted, got %d", orderCount)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := newServiceTestDB(t, "order_empty_cart")
	fixture := seedStore(t, db)
	orderSvc := newOrderServiceForTest(db)

	_, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected cart empty, got: %v", err)
	}
}

func TestCancelOrderRestoresStockAndQuota(t *testing.T) {
	db := newServiceTestDB(t, "order_cancel")
	fixture := seedStore(t, db)
	sale := seedFlashSale(t, db, fixture.product.ID, 20, 10)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{
		UserID:          fixture.user.ID,
		ShippingAddress: "addr",
		PaymentMethod:   constants.PaymentMethodBank,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	canceled, err := orderSvc.CancelOrder(order.ID, fixture.user.ID)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", canceled.Status)
	}
	if canceled.CanceledAt == nil {
		t.Fatalf("expected canceled_at to be set")
	}
	if got := sizeQuantity(t, db, fixture.sizeM.ID); got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
	var reloadedSale models.FlashSale
	if err := db.First(&reloadedSale, sale.ID).Error; err != nil {
		t.Fatalf("load sale failed: %v", err)
	}
	if reloadedSale.Sold != 0 {
		t.Fatalf("expected sold restored to 0, got %d", reloadedSale.Sold)
	}
	if canceled.Payment == nil || canceled.Payment.Status != constants.PaymentStatusFailed {
		t.Fatalf("expected pending payment marked failed, got %+v", canceled.Payment)
	}

	// 已取消的订单不能再次取消
	if _, err := orderSvc.CancelOrder(order.ID, fixture.user.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid on double cancel, got: %v", err)
	}
}

func TestCancelOrderRejectsOtherUsers(t *testing.T) {
	db := newServiceTestDB(t, "order_cancel_foreign")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := orderSvc.CancelOrder(order.ID, fixture.user.ID+1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for other user, got: %v", err)
	}
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	db := newServiceTestDB(t, "order_transitions")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 待支付不能直接跳到配送中或已签收
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusShipping); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid pending->shipping, got: %v", err)
	}
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid pending->delivered, got: %v", err)
	}
	if _, err := orderSvc.UpdateOrderStatus(order.ID, "unknown"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid unknown status, got: %v", err)
	}

	updated, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("pending->processing failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}

	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusShipping); err != nil {
		t.Fatalf("processing->shipping failed: %v", err)
	}
	updated, err = orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("shipping->delivered failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}

	// 终态不可再取消
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid delivered->cancelled, got: %v", err)
	}
}

func TestUpdateOrderStatusCancelFromProcessing(t *testing.T) {
	db := newServiceTestDB(t, "order_cancel_processing")
	fixture := seedStore(t, db)
	sale := seedFlashSale(t, db, fixture.product.ID, 20, 10)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("mark processing failed: %v", err)
	}

	cancelled, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("processing->cancelled failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// 取消后补偿库存与抢购配额
	if got := sizeQuantity(t, db, fixture.sizeM.ID); got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
	var reloaded models.FlashSale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("load flash sale failed: %v", err)
	}
	if reloaded.Sold != 0 {
		t.Fatalf("expected sold restored to 0, got %d", reloaded.Sold)
	}
}

func TestUpdateOrderStatusCancelFromShipping(t *testing.T) {
	db := newServiceTestDB(t, "order_cancel_shipping")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "L", Quantity: 1}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("mark processing failed: %v", err)
	}
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusShipping); err != nil {
		t.Fatalf("mark shipping failed: %v", err)
	}

	cancelled, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("shipping->cancelled failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if got := sizeQuantity(t, db, fixture.sizeL.ID); got != 3 {
		t.Fatalf("expected stock restored to 3, got %d", got)
	}
}

func TestCancelExpiredOrderSkipsNonPending(t *testing.T) {
	db := newServiceTestDB(t, "order_expire")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("mark processing failed: %v", err)
	}

	result, err := orderSvc.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if result.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing untouched, got %s", result.Status)
	}
	if got := sizeQuantity(t, db, fixture.sizeM.ID); got != 3 {
		t.Fatalf("expected stock still 3, got %d", got)
	}
}

func TestCancelExpiredOrderCancelsPending(t *testing.T) {
	db := newServiceTestDB(t, "order_expire_pending")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	result, err := orderSvc.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if result.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", result.Status)
	}
	if got := sizeQuantity(t, db, fixture.sizeM.ID); got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
}

func TestListOrdersByUserNewestFirst(t *testing.T) {
	db := newServiceTestDB(t, "order_list")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	var orderNos []string
	for i := 0; i < 3; i++ {
		if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 1}); err != nil {
			t.Fatalf("add cart item failed: %v", err)
		}
		order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
		if err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		orderNos = append(orderNos, order.OrderNo)
	}

	orders, total, err := orderSvc.ListOrdersByUser(repository.OrderListFilter{UserID: fixture.user.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("expected 3 orders, got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != orderNos[2] {
		t.Fatalf("expected newest first, got %s", orders[0].OrderNo)
	}
}

func TestGenerateOrderNoShape(t *testing.T) {
	orderNo := generateOrderNo()
	if len(orderNo) != 2+14+6 {
		t.Fatalf("unexpected order no length: %s", orderNo)
	}
	if orderNo[:2] != "SM" {
		t.Fatalf("expected SM prefix, got %s", orderNo)
	}
}

func TestGetOrderByNoForAdmin(t *testing.T) {
	db := newServiceTestDB(t, "order_by_no")
	fixture := seedStore(t, db)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: fixture.user.ID, ProductID: fixture.product.ID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(CreateOrderInput{UserID: fixture.user.ID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	found, err := orderSvc.GetOrderByNoForAdmin(order.OrderNo)
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("expected order %d, got %d", order.ID, found.ID)
	}
	if len(found.Details) != 1 {
		t.Fatalf("expected details preloaded, got %d", len(found.Details))
	}

	if _, err := orderSvc.GetOrderByNoForAdmin("SM00000000000000000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
	if _, err := orderSvc.GetOrderByNoForAdmin("  "); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for blank no, got: %v", err)
	}
}
