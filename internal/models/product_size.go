package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductSize 商品尺码表（价格+库存维度）
type ProductSize struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                             // 主键
	ProductID   uint           `gorm:"not null;index;uniqueIndex:idx_product_size" json:"product_id"`                    // 商品ID
	Size        string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_product_size" json:"size"`               // 尺码（同商品内唯一）
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`                                               // 库存数量
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`                        // 尺码价格（0 表示沿用商品基础价）
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                                                // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                                          // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                                   // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}
