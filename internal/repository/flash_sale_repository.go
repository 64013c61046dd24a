package repository

import (
	"errors"
	"time"

	"github.com/solemart/solemart/internal/models"

	"gorm.io/gorm"
)

// FlashSaleRepository 限时抢购数据访问接口
type FlashSaleRepository interface {
	List(filter FlashSaleListFilter) ([]models.FlashSale, int64, error)
	ListActive(now time.Time, limit int) ([]models.FlashSale, error)
	GetByID(id uint) (*models.FlashSale, error)
	GetActiveByProduct(productID uint, now time.Time) (*models.FlashSale, error)
	Create(sale *models.FlashSale) error
	Update(sale *models.FlashSale) error
	Delete(id uint) error
	IncrementSold(id uint, quantity int) (int64, error)
	DecrementSold(id uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) FlashSaleRepository
}

// GormFlashSaleRepository GORM 实现
type GormFlashSaleRepository struct {
	db *gorm.DB
}

// NewFlashSaleRepository 创建限时抢购仓库
func NewFlashSaleRepository(db *gorm.DB) *GormFlashSaleRepository {
	return &GormFlashSaleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFlashSaleRepository) WithTx(tx *gorm.DB) FlashSaleRepository {
	if tx == nil {
		return r
	}
	return &GormFlashSaleRepository{db: tx}
}

// List 抢购活动列表
func (r *GormFlashSaleRepository) List(filter FlashSaleListFilter) ([]models.FlashSale, int64, error) {
	var sales []models.FlashSale

	query := r.db.Model(&models.FlashSale{}).Preload("Product")
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("start_at DESC, id DESC").Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ListActive 按折扣力度倒序获取当前生效的抢购活动
func (r *GormFlashSaleRepository) ListActive(now time.Time, limit int) ([]models.FlashSale, error) {
	var sales []models.FlashSale
	query := r.db.Preload("Product").
		Where("is_active = ?", true).
		Where("start_at <= ? AND end_at >= ?", now, now).
		Order("discount_percent DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// GetByID 根据 ID 获取抢购活动
func (r *GormFlashSaleRepository) GetByID(id uint) (*models.FlashSale, error) {
	var sale models.FlashSale
	if err := r.db.Preload("Product").First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetActiveByProduct 获取商品当前生效的抢购活动。
// 多个活动窗口重叠时取折扣力度最大的一条。
func (r *GormFlashSaleRepository) GetActiveByProduct(productID uint, now time.Time) (*models.FlashSale, error) {
	var sale models.FlashSale
	err := r.db.Where("product_id = ?", productID).
		Where("is_active = ?", true).
		Where("start_at <= ? AND end_at >= ?", now, now).
		Order("discount_percent DESC, id ASC").
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// Create 创建抢购活动
func (r *GormFlashSaleRepository) Create(sale *models.FlashSale) error {
	return r.db.Create(sale).Error
}

// Update 更新抢购活动
func (r *GormFlashSaleRepository) Update(sale *models.FlashSale) error {
	return r.db.Save(sale).Error
}

// Delete 删除抢购活动
func (r *GormFlashSaleRepository) Delete(id uint) error {
	return r.db.Delete(&models.FlashSale{}, id).Error
}

// IncrementSold 条件累加已售数量，超出活动配额时不更新任何行。
func (r *GormFlashSaleRepository) IncrementSold(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid flash sale sold params")
	}
	result := r.db.Model(&models.FlashSale{}).
		Where("id = ? AND sold + ? <= quantity", id, quantity).
		Updates(map[string]interface{}{
			"sold": gorm.Expr("sold + ?", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DecrementSold 回退已售数量，用于取消订单补偿，不减到负数。
func (r *GormFlashSaleRepository) DecrementSold(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid flash sale sold params")
	}
	result := r.db.Model(&models.FlashSale{}).
		Where("id = ? AND sold >= ?", id, quantity).
		Updates(map[string]interface{}{
			"sold": gorm.Expr("sold - ?", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
