package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                    // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`       // 邮箱
	Name         string         `gorm:"not null" json:"name"`                    // 昵称
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`     // 密码哈希
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`  // 是否启用
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// Admin 管理员表
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`                // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"` // 用户名
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"` // 密码哈希
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
