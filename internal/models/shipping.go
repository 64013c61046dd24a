package models

import (
	"time"

	"gorm.io/gorm"
)

// Shipping 物流记录（每个订单至多一条，由唯一索引保证）
type Shipping struct {
	ID          uint           `gorm:"primarykey" json:"id"`                     // 主键
	OrderID     uint           `gorm:"uniqueIndex;not null" json:"order_id"`     // 订单ID
	Carrier     string         `gorm:"type:varchar(64)" json:"carrier"`          // 承运商
	TrackingNo  string         `gorm:"type:varchar(64);index" json:"tracking_no"` // 运单号
	Status      string         `gorm:"index;not null" json:"status"`             // 物流状态（与订单状态同族）
	ShippedAt   *time.Time     `gorm:"index" json:"shipped_at,omitempty"`        // 发货时间
	DeliveredAt *time.Time     `gorm:"index" json:"delivered_at,omitempty"`      // 签收时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (Shipping) TableName() string {
	return "shippings"
}
