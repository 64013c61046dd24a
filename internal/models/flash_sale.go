package models

import (
	"time"

	"gorm.io/gorm"
)

// FlashSale 限时抢购表
type FlashSale struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // 主键
	ProductID       uint           `gorm:"not null;index" json:"product_id"`                             // 商品ID
	Name            string         `gorm:"not null" json:"name"`                                         // 活动名称
	DiscountPercent Money          `gorm:"type:decimal(6,2);not null" json:"discount_percent"`           // 折扣百分比
	Quantity        int            `gorm:"not null;default:0" json:"quantity"`                           // 活动限量
	Sold            int            `gorm:"not null;default:0" json:"sold"`                               // 已售数量（sold <= quantity）
	StartAt         time.Time      `gorm:"index;not null" json:"start_at"`                               // 开始时间
	EndAt           time.Time      `gorm:"index;not null" json:"end_at"`                                 // 结束时间
	IsActive        bool           `gorm:"not null;default:true;index" json:"is_active"`                 // 是否启用
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (FlashSale) TableName() string {
	return "flash_sales"
}

// ActiveAt 判断活动在指定时刻是否生效（启用且处于时间窗内，含边界）
func (f *FlashSale) ActiveAt(now time.Time) bool {
	if f == nil || !f.IsActive {
		return false
	}
	return !now.Before(f.StartAt) && !now.After(f.EndAt)
}
