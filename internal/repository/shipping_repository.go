package repository

import (
	"errors"

	"github.com/solemart/solemart/internal/models"

	"gorm.io/gorm"
)

// ShippingRepository 物流记录数据访问接口
type ShippingRepository interface {
	GetByID(id uint) (*models.Shipping, error)
	GetByOrder(orderID uint) (*models.Shipping, error)
	Create(shipping *models.Shipping) error
	Update(shipping *models.Shipping) error
	WithTx(tx *gorm.DB) ShippingRepository
}

// GormShippingRepository GORM 实现
type GormShippingRepository struct {
	db *gorm.DB
}

// NewShippingRepository 创建物流仓库
func NewShippingRepository(db *gorm.DB) *GormShippingRepository {
	return &GormShippingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormShippingRepository) WithTx(tx *gorm.DB) ShippingRepository {
	if tx == nil {
		return r
	}
	return &GormShippingRepository{db: tx}
}

// GetByID 根据 ID 获取物流记录
func (r *GormShippingRepository) GetByID(id uint) (*models.Shipping, error) {
	var shipping models.Shipping
	if err := r.db.First(&shipping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipping, nil
}

// GetByOrder 根据订单获取物流记录，一单至多一条。
func (r *GormShippingRepository) GetByOrder(orderID uint) (*models.Shipping, error) {
	var shipping models.Shipping
	if err := r.db.Where("order_id = ?", orderID).First(&shipping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipping, nil
}

// Create 创建物流记录
func (r *GormShippingRepository) Create(shipping *models.Shipping) error {
	return r.db.Create(shipping).Error
}

// Update 更新物流记录
func (r *GormShippingRepository) Update(shipping *models.Shipping) error {
	return r.db.Save(shipping).Error
}
