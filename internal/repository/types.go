package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page          int
	PageSize      int
	ProductID     uint
	UserID        uint
	Rating        int
	IncludeHidden bool
}

// FlashSaleListFilter 查询限时抢购列表的过滤条件
type FlashSaleListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	IsActive  *bool
}
