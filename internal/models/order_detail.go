package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderDetail 订单明细表（下单时一次写入，永不更新的历史价格快照）
type OrderDetail struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                            // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                          // 商品ID
	ProductName string         `gorm:"not null" json:"product_name"`                              // 商品名称快照
	Size        string         `gorm:"type:varchar(32);not null" json:"size"`                     // 尺码
	Quantity    int            `gorm:"not null" json:"quantity"`                                  // 数量
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Subtotal    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`    // 小计
	FlashSaleID *uint          `gorm:"index" json:"flash_sale_id,omitempty"`                      // 占用配额的抢购活动ID
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}
