package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleZhCN 简体中文
	LocaleZhCN = "zh-CN"
	// LocaleEnUS 英文
	LocaleEnUS = "en-US"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleZhCN
)

// ResolveLocale 解析请求语言（优先 query，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return normalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang == "" {
			continue
		}
		return normalizeLocale(lang)
	}
	return DefaultLocale
}

// T 按语言翻译消息 key，缺失时回退默认语言，再缺失时返回 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[normalizeLocale(locale)]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按 fmt 规则填充参数
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLocale(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(normalized, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(normalized, "en"):
		return LocaleEnUS
	default:
		return DefaultLocale
	}
}

var catalog = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":           "请求参数错误",
		"error.unauthorized":          "未登录或登录已过期",
		"error.internal":              "服务内部错误",
		"error.too_many_requests":     "请求过于频繁，请 %d 秒后再试",
		"error.user_id_invalid":       "用户标识无效",
		"error.user_id_type_invalid":  "用户标识类型错误",
		"error.admin_id_invalid":      "管理员标识无效",
		"error.admin_id_type_invalid": "管理员标识类型错误",

		"error.jwt_secret_missing":     "JWT 密钥未配置",
		"error.auth_header_missing":    "缺少 Authorization 请求头",
		"error.auth_header_invalid":    "Authorization 请求头格式错误",
		"error.token_invalid":          "登录凭证无效",
		"error.user_disabled":          "账号已被禁用",
		"error.order_too_many":         "下单过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable": "限流服务暂不可用，请稍后再试",

		"error.product_not_found":    "商品不存在或已下架",
		"error.product_invalid":      "商品参数无效",
		"error.product_fetch_failed": "商品查询失败",
		"error.product_save_failed":  "商品保存失败",
		"error.size_invalid":         "商品不含该尺码",
		"error.stock_insufficient":   "库存不足",
		"error.quantity_invalid":     "数量无效",

		"error.category_not_found":    "分类不存在",
		"error.category_invalid":      "分类参数无效或仍有商品挂载",
		"error.category_fetch_failed": "分类查询失败",
		"error.category_save_failed":  "分类保存失败",

		"error.cart_empty":          "购物车为空",
		"error.cart_item_not_found": "购物车项不存在",
		"error.cart_fetch_failed":   "购物车查询失败",
		"error.cart_update_failed":  "购物车更新失败",

		"error.order_not_found":      "订单不存在",
		"error.order_create_failed":  "订单创建失败",
		"error.order_fetch_failed":   "订单查询失败",
		"error.order_status_invalid": "订单状态不允许该操作",
		"error.order_cancel_failed":  "订单取消失败",

		"error.review_order_invalid":  "订单不存在、非本人订单或尚未签收",
		"error.review_duplicate":      "该订单商品已评价过",
		"error.review_not_found":      "评价不存在",
		"error.review_rating_invalid": "评分必须在 1 到 5 之间",
		"error.review_create_failed":  "评价创建失败",
		"error.review_fetch_failed":   "评价查询失败",
		"error.review_update_failed":  "评价更新失败",

		"error.flash_sale_not_found":    "限时抢购不存在",
		"error.flash_sale_invalid":      "限时抢购参数无效",
		"error.flash_sale_fetch_failed": "限时抢购查询失败",
		"error.flash_sale_save_failed":  "限时抢购保存失败",

		"error.payment_exists":         "订单已存在支付记录",
		"error.payment_not_found":      "支付记录不存在",
		"error.payment_status_invalid": "支付状态不允许该操作",
		"error.payment_save_failed":    "支付记录保存失败",

		"error.shipping_exists":      "订单已存在物流记录",
		"error.shipping_not_found":   "物流记录不存在",
		"error.shipping_save_failed": "物流记录保存失败",
	},
	LocaleEnUS: {
		"error.bad_request":           "invalid request",
		"error.unauthorized":          "unauthorized",
		"error.internal":              "internal server error",
		"error.too_many_requests":     "too many requests, retry in %d seconds",
		"error.user_id_invalid":       "invalid user id",
		"error.user_id_type_invalid":  "invalid user id type",
		"error.admin_id_invalid":      "invalid admin id",
		"error.admin_id_type_invalid": "invalid admin id type",

		"error.jwt_secret_missing":     "jwt secret not configured",
		"error.auth_header_missing":    "missing authorization header",
		"error.auth_header_invalid":    "invalid authorization header",
		"error.token_invalid":          "invalid token",
		"error.user_disabled":          "account disabled",
		"error.order_too_many":         "too many order attempts, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable, try again later",

		"error.product_not_found":    "product not found or inactive",
		"error.product_invalid":      "invalid product parameters",
		"error.product_fetch_failed": "failed to fetch product",
		"error.product_save_failed":  "failed to save product",
		"error.size_invalid":         "size not offered by this product",
		"error.stock_insufficient":   "insufficient stock",
		"error.quantity_invalid":     "invalid quantity",

		"error.category_not_found":    "category not found",
		"error.category_invalid":      "invalid category or products still attached",
		"error.category_fetch_failed": "failed to fetch categories",
		"error.category_save_failed":  "failed to save category",

		"error.cart_empty":          "cart is empty",
		"error.cart_item_not_found": "cart item not found",
		"error.cart_fetch_failed":   "failed to fetch cart",
		"error.cart_update_failed":  "failed to update cart",

		"error.order_not_found":      "order not found",
		"error.order_create_failed":  "failed to create order",
		"error.order_fetch_failed":   "failed to fetch orders",
		"error.order_status_invalid": "order status does not allow this operation",
		"error.order_cancel_failed":  "failed to cancel order",

		"error.review_order_invalid":  "order missing, not yours, or not delivered",
		"error.review_duplicate":      "this order item was already reviewed",
		"error.review_not_found":      "review not found",
		"error.review_rating_invalid": "rating must be between 1 and 5",
		"error.review_create_failed":  "failed to create review",
		"error.review_fetch_failed":   "failed to fetch reviews",
		"error.review_update_failed":  "failed to update review",

		"error.flash_sale_not_found":    "flash sale not found",
		"error.flash_sale_invalid":      "invalid flash sale parameters",
		"error.flash_sale_fetch_failed": "failed to fetch flash sales",
		"error.flash_sale_save_failed":  "failed to save flash sale",

		"error.payment_exists":         "order already has a payment record",
		"error.payment_not_found":      "payment not found",
		"error.payment_status_invalid": "payment status does not allow this operation",
		"error.payment_save_failed":    "failed to save payment",

		"error.shipping_exists":      "order already has a shipping record",
		"error.shipping_not_found":   "shipping record not found",
		"error.shipping_save_failed": "failed to save shipping record",
	},
}
