package service

import (
	"strings"
	"time"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"github.com/shopspring/decimal"
)

// FlashSaleView 抢购活动视图，带折后价与剩余配额。
type FlashSaleView struct {
	models.FlashSale
	Remaining      int          `json:"remaining"`
	EffectivePrice models.Money `json:"effective_price"`
}

// SaveFlashSaleInput 抢购活动写入输入
type SaveFlashSaleInput struct {
	ProductID       uint
	Name            string
	DiscountPercent models.Money
	Quantity        int
	StartAt         time.Time
	EndAt           time.Time
	IsActive        bool
}

// FlashSaleService 限时抢购服务
type FlashSaleService struct {
	flashSaleRepo repository.FlashSaleRepository
	productRepo   repository.ProductRepository
}

// NewFlashSaleService 创建限时抢购服务
func NewFlashSaleService(flashSaleRepo repository.FlashSaleRepository, productRepo repository.ProductRepository) *FlashSaleService {
	return &FlashSaleService{
		flashSaleRepo: flashSaleRepo,
		productRepo:   productRepo,
	}
}

// ListActive 当前生效的抢购活动，按折扣力度倒序，最多返回固定条数。
func (s *FlashSaleService) ListActive() ([]FlashSaleView, error) {
	now := time.Now()
	sales, err := s.flashSaleRepo.ListActive(now, constants.FlashSaleListLimit)
	if err != nil {
		return nil, ErrFlashSaleFetchFailed
	}
	views := make([]FlashSaleView, 0, len(sales))
	for _, sale := range sales {
		views = append(views, s.buildView(sale, now))
	}
	return views, nil
}

// List 后台抢购活动列表
func (s *FlashSaleService) List(filter repository.FlashSaleListFilter) ([]models.FlashSale, int64, error) {
	sales, total, err := s.flashSaleRepo.List(filter)
	if err != nil {
		return nil, 0, ErrFlashSaleFetchFailed
	}
	return sales, total, nil
}

// GetByID 获取抢购活动
func (s *FlashSaleService) GetByID(id uint) (*models.FlashSale, error) {
	sale, err := s.flashSaleRepo.GetByID(id)
	if err != nil {
		return nil, ErrFlashSaleFetchFailed
	}
	if sale == nil {
		return nil, ErrFlashSaleNotFound
	}
	return sale, nil
}

// Create 创建抢购活动
func (s *FlashSaleService) Create(input SaveFlashSaleInput) (*models.FlashSale, error) {
	product, err := s.validateSaveInput(input)
	if err != nil {
		return nil, err
	}
	sale := &models.FlashSale{
		ProductID:       product.ID,
		Name:            strings.TrimSpace(input.Name),
		DiscountPercent: input.DiscountPercent,
		Quantity:        input.Quantity,
		Sold:            0,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		IsActive:        input.IsActive,
	}
	if err := s.flashSaleRepo.Create(sale); err != nil {
		return nil, ErrFlashSaleSaveFailed
	}
	return sale, nil
}

// Update 更新抢购活动，已售数量保留不重置。
func (s *FlashSaleService) Update(id uint, input SaveFlashSaleInput) (*models.FlashSale, error) {
	sale, err := s.flashSaleRepo.GetByID(id)
	if err != nil {
		return nil, ErrFlashSaleFetchFailed
	}
	if sale == nil {
		return nil, ErrFlashSaleNotFound
	}
	if _, err := s.validateSaveInput(input); err != nil {
		return nil, err
	}
	if input.Quantity < sale.Sold {
		return nil, ErrFlashSaleInvalid
	}

	sale.ProductID = input.ProductID
	sale.Name = strings.TrimSpace(input.Name)
	sale.DiscountPercent = input.DiscountPercent
	sale.Quantity = input.Quantity
	sale.StartAt = input.StartAt
	sale.EndAt = input.EndAt
	sale.IsActive = input.IsActive
	sale.Product = nil

	if err := s.flashSaleRepo.Update(sale); err != nil {
		return nil, ErrFlashSaleSaveFailed
	}
	return sale, nil
}

// Delete 删除抢购活动
func (s *FlashSaleService) Delete(id uint) error {
	sale, err := s.flashSaleRepo.GetByID(id)
	if err != nil {
		return ErrFlashSaleFetchFailed
	}
	if sale == nil {
		return ErrFlashSaleNotFound
	}
	return s.flashSaleRepo.Delete(id)
}

// validateSaveInput 校验抢购参数：折扣在 (0,100]、时间窗有效、限量不超过商品总库存。
func (s *FlashSaleService) validateSaveInput(input SaveFlashSaleInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrFlashSaleInvalid
	}
	percent := input.DiscountPercent.Decimal
	if !percent.GreaterThan(decimal.Zero) || percent.GreaterThan(percentBase) {
		return nil, ErrFlashSaleInvalid
	}
	if input.Quantity <= 0 {
		return nil, ErrFlashSaleInvalid
	}
	if !input.EndAt.After(input.StartAt) {
		return nil, ErrFlashSaleInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if input.Quantity > product.TotalStock() {
		return nil, ErrFlashSaleInvalid
	}
	return product, nil
}

func (s *FlashSaleService) buildView(sale models.FlashSale, now time.Time) FlashSaleView {
	remaining := sale.Quantity - sale.Sold
	if remaining < 0 {
		remaining = 0
	}
	view := FlashSaleView{FlashSale: sale, Remaining: remaining}
	if sale.Product != nil {
		saleCopy := sale
		view.EffectivePrice = resolveUnitPrice(sale.Product, nil, &saleCopy, now)
	}
	return view
}
