package service

import "errors"

// 业务哨兵错误，处理器层统一映射为响应码与多语言文案。
var (
	// 商品
	ErrProductNotFound    = errors.New("product not found")
	ErrProductInvalid     = errors.New("product invalid")
	ErrProductFetchFailed = errors.New("product fetch failed")
	ErrProductSaveFailed  = errors.New("product save failed")
	ErrSizeInvalid        = errors.New("size invalid")
	ErrStockInsufficient  = errors.New("stock insufficient")

	// 购物车
	ErrCartEmpty        = errors.New("cart empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartFetchFailed  = errors.New("cart fetch failed")
	ErrCartUpdateFailed = errors.New("cart update failed")
	ErrQuantityInvalid  = errors.New("quantity invalid")

	// 订单
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrOrderFetchFailed   = errors.New("order fetch failed")
	ErrOrderStatusInvalid = errors.New("order status invalid")
	ErrOrderCancelFailed  = errors.New("order cancel failed")

	// 评价
	ErrReviewOrderInvalid  = errors.New("review order invalid")
	ErrReviewDuplicate     = errors.New("review duplicate")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewRatingInvalid = errors.New("review rating invalid")
	ErrReviewCreateFailed  = errors.New("review create failed")
	ErrReviewFetchFailed   = errors.New("review fetch failed")
	ErrReviewUpdateFailed  = errors.New("review update failed")

	// 限时抢购
	ErrFlashSaleNotFound    = errors.New("flash sale not found")
	ErrFlashSaleInvalid     = errors.New("flash sale invalid")
	ErrFlashSaleFetchFailed = errors.New("flash sale fetch failed")
	ErrFlashSaleSaveFailed  = errors.New("flash sale save failed")

	// 支付
	ErrPaymentExists        = errors.New("payment already exists")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentStatusInvalid = errors.New("payment status invalid")
	ErrPaymentSaveFailed    = errors.New("payment save failed")

	// 物流
	ErrShippingExists     = errors.New("shipping already exists")
	ErrShippingNotFound   = errors.New("shipping not found")
	ErrShippingSaveFailed = errors.New("shipping save failed")
)
