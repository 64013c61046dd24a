package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评价表（唯一索引保证同一用户对同一订单的同一商品仅评价一次）
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                          // 主键
	UserID    uint           `gorm:"not null;uniqueIndex:idx_review_user_product_order" json:"user_id"`    // 用户ID
	ProductID uint           `gorm:"not null;uniqueIndex:idx_review_user_product_order" json:"product_id"` // 商品ID
	OrderID   uint           `gorm:"not null;uniqueIndex:idx_review_user_product_order" json:"order_id"`   // 订单ID（证明已签收）
	Rating    int            `gorm:"not null" json:"rating"`                                        // 评分（1-5）
	Comment   string         `gorm:"type:text" json:"comment"`                                      // 评价内容
	IsHidden  bool           `gorm:"not null;default:false;index" json:"is_hidden"`                 // 是否被管理员隐藏
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 关联用户
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
