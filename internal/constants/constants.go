package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipping   = "shipping"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// 支付方式常量
const (
	PaymentMethodCOD     = "cod"
	PaymentMethodBank    = "bank_transfer"
	PaymentMethodEwallet = "ewallet"
)

// 物流状态常量（与订单状态同族）
const (
	ShippingStatusPending    = "pending"
	ShippingStatusProcessing = "processing"
	ShippingStatusShipping   = "shipping"
	ShippingStatusDelivered  = "delivered"
	ShippingStatusCancelled  = "cancelled"
)

// 评价约束常量
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// 限时抢购常量
const (
	FlashSaleListLimit = 10
)

// 商品库存状态常量
const (
	ProductStockStatusInStock    = "in_stock"
	ProductStockStatusLowStock   = "low_stock"
	ProductStockStatusOutOfStock = "out_of_stock"

	// ProductLowStockThreshold 总库存不高于该值时标记为低库存
	ProductLowStockThreshold = 5
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskOrderTimeoutCancel = "order:timeout_cancel"
	TaskOrderAutoComplete  = "order:auto_complete"
)
