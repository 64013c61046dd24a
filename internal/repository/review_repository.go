package repository

import (
	"errors"

	"github.com/solemart/solemart/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 商品评价数据访问接口
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	CountByUserProductOrder(userID, productID, orderID uint) (int64, error)
	AverageRating(productID uint) (float64, int64, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// List 评价列表，默认仅展示未隐藏的评价。
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review

	query := r.db.Model(&models.Review{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Rating != 0 {
		query = query.Where("rating = ?", filter.Rating)
	}
	if !filter.IncludeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// CountByUserProductOrder 统计同一用户、商品、订单的评价数，用于查重。
func (r *GormReviewRepository) CountByUserProductOrder(userID, productID, orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ? AND order_id = ?", userID, productID, orderID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AverageRating 统计商品可见评价的平均分与条数。
func (r *GormReviewRepository) AverageRating(productID uint) (float64, int64, error) {
	type ratingAgg struct {
		Avg   float64
		Count int64
	}
	var agg ratingAgg
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ? AND is_hidden = ?", productID, false).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
