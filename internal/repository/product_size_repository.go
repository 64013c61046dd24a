package repository

import (
	"errors"

	"github.com/solemart/solemart/internal/models"

	"gorm.io/gorm"
)

// ProductSizeRepository 商品尺码数据访问接口
type ProductSizeRepository interface {
	ListByProduct(productID uint) ([]models.ProductSize, error)
	GetByProductAndSize(productID uint, size string) (*models.ProductSize, error)
	Create(size *models.ProductSize) error
	Update(size *models.ProductSize) error
	Delete(id uint) error
	DecrementStock(productID uint, size string, quantity int) (int64, error)
	RestoreStock(productID uint, size string, quantity int) (int64, error)
	WithTx(tx *gorm.DB) ProductSizeRepository
}

// GormProductSizeRepository GORM 实现
type GormProductSizeRepository struct {
	db *gorm.DB
}

// NewProductSizeRepository 创建商品尺码仓库
func NewProductSizeRepository(db *gorm.DB) *GormProductSizeRepository {
	return &GormProductSizeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductSizeRepository) WithTx(tx *gorm.DB) ProductSizeRepository {
	if tx == nil {
		return r
	}
	return &GormProductSizeRepository{db: tx}
}

// ListByProduct 获取商品的全部尺码
func (r *GormProductSizeRepository) ListByProduct(productID uint) ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	if err := r.db.Where("product_id = ?", productID).Order("sort_order DESC, id ASC").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// GetByProductAndSize 根据商品与尺码标签获取尺码行
func (r *GormProductSizeRepository) GetByProductAndSize(productID uint, size string) (*models.ProductSize, error) {
	var row models.ProductSize
	if err := r.db.Where("product_id = ? AND size = ?", productID, size).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create 创建尺码
func (r *GormProductSizeRepository) Create(size *models.ProductSize) error {
	return r.db.Create(size).Error
}

// Update 更新尺码
func (r *GormProductSizeRepository) Update(size *models.ProductSize) error {
	return r.db.Save(size).Error
}

// Delete 删除尺码
func (r *GormProductSizeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductSize{}, id).Error
}

// DecrementStock 条件扣减库存，余量不足时不更新任何行。
// 返回受影响行数，调用方通过 RowsAffected 判断扣减是否成功。
func (r *GormProductSizeRepository) DecrementStock(productID uint, size string, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.ProductSize{}).
		Where("product_id = ? AND size = ? AND quantity >= ?", productID, size, quantity).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreStock 回补库存，用于取消订单或下单失败补偿。
func (r *GormProductSizeRepository) RestoreStock(productID uint, size string, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock restore params")
	}
	result := r.db.Model(&models.ProductSize{}).
		Where("product_id = ? AND size = ?", productID, size).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
