package service

import (
	"strings"
	"time"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"
)

// ProductSizeView 尺码视图，带折后价。
type ProductSizeView struct {
	models.ProductSize
	EffectivePrice models.Money `json:"effective_price"`
}

// ProductView 商品视图（列表与详情共用）
type ProductView struct {
	Product        models.Product    `json:"product"`
	EffectivePrice models.Money      `json:"effective_price"`
	OriginalPrice  models.Money      `json:"original_price"`
	FlashSale      *models.FlashSale `json:"flash_sale,omitempty"`
	Sizes          []ProductSizeView `json:"sizes"`
	TotalStock     int               `json:"total_stock"`
	StockStatus    string            `json:"stock_status"`
	RatingAverage  float64           `json:"rating_average"`
	RatingCount    int64             `json:"rating_count"`
}

// SaveProductSizeInput 尺码写入输入
type SaveProductSizeInput struct {
	Size        string
	Quantity    int
	PriceAmount models.Money
	SortOrder   int
}

// SaveProductInput 商品写入输入
type SaveProductInput struct {
	CategoryID      uint
	Slug            string
	Name            string
	Description     string
	PriceAmount     models.Money
	DiscountPercent models.Money
	Images          []string
	Tags            []string
	IsActive        bool
	SortOrder       int
	Sizes           []SaveProductSizeInput
}

// ProductService 商品服务
type ProductService struct {
	productRepo     repository.ProductRepository
	productSizeRepo repository.ProductSizeRepository
	categoryRepo    repository.CategoryRepository
	flashSaleRepo   repository.FlashSaleRepository
	reviewRepo      repository.ReviewRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, productSizeRepo repository.ProductSizeRepository, categoryRepo repository.CategoryRepository, flashSaleRepo repository.FlashSaleRepository, reviewRepo repository.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		productSizeRepo: productSizeRepo,
		categoryRepo:    categoryRepo,
		flashSaleRepo:   flashSaleRepo,
		reviewRepo:      reviewRepo,
	}
}

// List 商品列表，逐个商品解析当前生效价格。
func (s *ProductService) List(filter repository.ProductListFilter) ([]ProductView, int64, error) {
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, ErrProductFetchFailed
	}
	now := time.Now()
	views := make([]ProductView, 0, len(products))
	for i := range products {
		view, err := s.buildView(&products[i], now, false)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

// GetByID 商品详情
func (s *ProductService) GetByID(id uint, onlyActive bool) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil || (onlyActive && !product.IsActive) {
		return nil, ErrProductNotFound
	}
	return s.buildView(product, time.Now(), true)
}

// GetBySlug 根据 slug 获取商品详情
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*ProductView, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), onlyActive)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.buildView(product, time.Now(), true)
}

func (s *ProductService) buildView(product *models.Product, now time.Time, withRating bool) (*ProductView, error) {
	sale, err := s.flashSaleRepo.GetActiveByProduct(product.ID, now)
	if err != nil {
		return nil, ErrProductFetchFailed
	}

	sizes := make([]ProductSizeView, 0, len(product.Sizes))
	for _, size := range product.Sizes {
		sizeCopy := size
		sizes = append(sizes, ProductSizeView{
			ProductSize:    size,
			EffectivePrice: resolveUnitPrice(product, &sizeCopy, sale, now),
		})
	}

	view := &ProductView{
		Product:        *product,
		EffectivePrice: resolveUnitPrice(product, nil, sale, now),
		OriginalPrice:  product.PriceAmount,
		FlashSale:      sale,
		Sizes:          sizes,
		TotalStock:     product.TotalStock(),
	}
	view.StockStatus = stockStatusOf(view.TotalStock)

	if withRating && s.reviewRepo != nil {
		avg, count, err := s.reviewRepo.AverageRating(product.ID)
		if err != nil {
			return nil, ErrProductFetchFailed
		}
		view.RatingAverage = avg
		view.RatingCount = count
	}
	return view, nil
}

// Create 创建商品与尺码
func (s *ProductService) Create(input SaveProductInput) (*models.Product, error) {
	if err := s.validateSaveInput(input, nil); err != nil {
		return nil, err
	}
	product := &models.Product{
		CategoryID:      input.CategoryID,
		Slug:            strings.TrimSpace(input.Slug),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		PriceAmount:     input.PriceAmount,
		DiscountPercent: input.DiscountPercent,
		Images:          input.Images,
		Tags:            input.Tags,
		IsActive:        input.IsActive,
		SortOrder:       input.SortOrder,
	}
	for _, sizeInput := range input.Sizes {
		product.Sizes = append(product.Sizes, models.ProductSize{
			Size:        strings.TrimSpace(sizeInput.Size),
			Quantity:    sizeInput.Quantity,
			PriceAmount: sizeInput.PriceAmount,
			SortOrder:   sizeInput.SortOrder,
		})
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, ErrProductSaveFailed
	}
	return product, nil
}

// Update 更新商品基础信息（不触碰尺码库存）
func (s *ProductService) Update(id uint, input SaveProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateSaveInput(input, &id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Slug = strings.TrimSpace(input.Slug)
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.PriceAmount = input.PriceAmount
	product.DiscountPercent = input.DiscountPercent
	product.Images = input.Images
	product.Tags = input.Tags
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder
	product.Sizes = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, ErrProductSaveFailed
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return ErrProductFetchFailed
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// UpsertSize 新增或调整商品尺码
func (s *ProductService) UpsertSize(productID uint, input SaveProductSizeInput) (*models.ProductSize, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	label := strings.TrimSpace(input.Size)
	if label == "" || input.Quantity < 0 {
		return nil, ErrSizeInvalid
	}

	existing, err := s.productSizeRepo.GetByProductAndSize(productID, label)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if existing != nil {
		existing.Quantity = input.Quantity
		existing.PriceAmount = input.PriceAmount
		existing.SortOrder = input.SortOrder
		if err := s.productSizeRepo.Update(existing); err != nil {
			return nil, ErrProductSaveFailed
		}
		return existing, nil
	}

	size := &models.ProductSize{
		ProductID:   productID,
		Size:        label,
		Quantity:    input.Quantity,
		PriceAmount: input.PriceAmount,
		SortOrder:   input.SortOrder,
	}
	if err := s.productSizeRepo.Create(size); err != nil {
		return nil, ErrProductSaveFailed
	}
	return size, nil
}

func (s *ProductService) validateSaveInput(input SaveProductInput, excludeID *uint) error {
	if strings.TrimSpace(input.Slug) == "" || strings.TrimSpace(input.Name) == "" {
		return ErrProductInvalid
	}
	if input.PriceAmount.IsNegative() || input.DiscountPercent.IsNegative() {
		return ErrProductInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return ErrProductFetchFailed
	}
	if category == nil {
		return ErrProductInvalid
	}
	count, err := s.productRepo.CountBySlug(strings.TrimSpace(input.Slug), excludeID)
	if err != nil {
		return ErrProductFetchFailed
	}
	if count > 0 {
		return ErrProductInvalid
	}
	for _, sizeInput := range input.Sizes {
		if strings.TrimSpace(sizeInput.Size) == "" || sizeInput.Quantity < 0 {
			return ErrSizeInvalid
		}
	}
	return nil
}

func stockStatusOf(total int) string {
	switch {
	case total <= 0:
		return constants.ProductStockStatusOutOfStock
	case total <= constants.ProductLowStockThreshold:
		return constants.ProductStockStatusLowStock
	default:
		return constants.ProductStockStatusInStock
	}
}
