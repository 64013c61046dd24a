package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录（每个订单至多一条，由唯一索引保证）
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键
	OrderID   uint           `gorm:"uniqueIndex;not null" json:"order_id"`          // 订单ID
	Amount    Money          `gorm:"type:decimal(20,2);not null" json:"amount"`     // 支付金额
	Method    string         `gorm:"type:varchar(32);not null" json:"method"`       // 支付方式
	Status    string         `gorm:"index;not null" json:"status"`                  // 支付状态
	PaidAt    *time.Time     `gorm:"index" json:"paid_at,omitempty"`                // 支付完成时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
