package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（下单时的购物车快照，金额不随商品价格变化重算）
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                // 订单状态
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 订单金额
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`                  // 收货地址
	Note            string         `gorm:"type:text" json:"note"`                                       // 买家备注
	OrderDate       time.Time      `gorm:"index;not null" json:"order_date"`                            // 下单时间
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at,omitempty"`                          // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Details  []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`  // 订单明细
	Payment  *Payment      `gorm:"foreignKey:OrderID" json:"payment,omitempty"`  // 支付记录
	Shipping *Shipping     `gorm:"foreignKey:OrderID" json:"shipping,omitempty"` // 物流记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
