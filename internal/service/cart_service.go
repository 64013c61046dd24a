package service

import (
	"strings"
	"time"

	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemView 购物车项视图，单价为加入时快照。
type CartItemView struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	PriceAtTime models.Money    `json:"price_at_time"`
	Subtotal    models.Money    `json:"subtotal"`
	Product     *models.Product `json:"product,omitempty"`
}

// CartView 购物车视图
type CartView struct {
	CartID      uint           `json:"cart_id"`
	Items       []CartItemView `json:"items"`
	TotalAmount models.Money   `json:"total_amount"`
}

// AddCartItemInput 添加购物车项输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Size      string
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	productSizeRepo repository.ProductSizeRepository
	flashSaleRepo   repository.FlashSaleRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, productSizeRepo repository.ProductSizeRepository, flashSaleRepo repository.FlashSaleRepository) *CartService {
	return &CartService{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		productSizeRepo: productSizeRepo,
		flashSaleRepo:   flashSaleRepo,
	}
}

// GetCart 获取用户购物车，不存在时惰性创建空车。
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrCartFetchFailed
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}

	view := &CartView{CartID: cart.ID, Items: make([]CartItemView, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		subtotal := item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		view.Items = append(view.Items, CartItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Size:        item.Size,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
			Subtotal:    models.NewMoneyFromDecimal(subtotal),
			Product:     item.Product,
		})
	}
	view.TotalAmount = models.NewMoneyFromDecimal(total)
	return view, nil
}

// AddItem 添加购物车项。
// 同商品同尺码的已有项合并数量并以当前解析价覆盖快照价，合并后的数量整体校验库存。
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrCartUpdateFailed
	}
	if input.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	sizeLabel := strings.TrimSpace(input.Size)
	if sizeLabel == "" {
		return nil, ErrSizeInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	size, err := s.productSizeRepo.GetByProductAndSize(input.ProductID, sizeLabel)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if size == nil {
		return nil, ErrSizeInvalid
	}

	cart, err := s.cartRepo.GetOrCreateByUser(input.UserID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	existing, err := s.cartRepo.GetItem(cart.ID, input.ProductID, sizeLabel)
	if err != nil {
		return nil, ErrCartFetchFailed
	}

	quantity := input.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > size.Quantity {
		return nil, ErrStockInsufficient
	}

	now := time.Now()
	sale, err := s.flashSaleRepo.GetActiveByProduct(input.ProductID, now)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	unitPrice := resolveUnitPrice(product, size, sale, now)

	if existing != nil {
		existing.Quantity = quantity
		existing.PriceAtTime = unitPrice
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, ErrCartUpdateFailed
		}
		return existing, nil
	}

	item := &models.CartItem{
		CartID:      cart.ID,
		ProductID:   input.ProductID,
		Size:        sizeLabel,
		Quantity:    quantity,
		PriceAtTime: unitPrice,
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		return nil, ErrCartUpdateFailed
	}
	return item, nil
}

// UpdateItemQuantity 修改购物车项数量，0 及以下等同删除。
// 仅调整数量，不重新解析快照价。
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrCartUpdateFailed
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
			return nil, ErrCartUpdateFailed
		}
		return nil, nil
	}

	size, err := s.productSizeRepo.GetByProductAndSize(item.ProductID, item.Size)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if size == nil {
		return nil, ErrSizeInvalid
	}
	if quantity > size.Quantity {
		return nil, ErrStockInsufficient
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, ErrCartUpdateFailed
	}
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrCartUpdateFailed
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return ErrCartFetchFailed
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return ErrCartFetchFailed
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrCartUpdateFailed
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return ErrCartFetchFailed
	}
	if err := s.cartRepo.ClearByCart(cart.ID); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}
