package repository

import (
	"errors"

	"github.com/solemart/solemart/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(cartID, productID uint, size string) (*models.CartItem, error)
	GetItemByID(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(cartID, itemID uint) error
	ClearByCart(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetOrCreateByUser 获取用户购物车，不存在时惰性创建。
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, errors.New("invalid cart user")
	}
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if createErr := r.db.Create(&cart).Error; createErr != nil {
			return nil, createErr
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListItems 获取购物车项，按最近更新排前。
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Sizes").
		Where("cart_id = ?", cartID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 根据商品与尺码获取购物车项
func (r *GormCartRepository) GetItem(cartID, productID uint, size string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByID 根据购物车项 ID 获取，限定所属购物车防止越权。
func (r *GormCartRepository) GetItemByID(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新购物车项
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, itemID uint) error {
	return r.db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItem{}).Error
}

// ClearByCart 清空购物车
func (r *GormCartRepository) ClearByCart(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
