package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项
type CartItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                               // 主键
	CartID      uint           `gorm:"not null;uniqueIndex:idx_cart_product_size" json:"cart_id"`          // 购物车ID
	ProductID   uint           `gorm:"not null;uniqueIndex:idx_cart_product_size" json:"product_id"`       // 商品ID
	Size        string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_cart_product_size" json:"size"` // 尺码
	Quantity    int            `gorm:"not null" json:"quantity"`                                           // 数量
	PriceAtTime Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_time"`         // 加入时解析的单价
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                     // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
