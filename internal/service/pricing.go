package service

import (
	"time"

	"github.com/solemart/solemart/internal/models"

	"github.com/shopspring/decimal"
)

var percentBase = decimal.NewFromInt(100)

// resolveBasePrice 解析尺码基础价，尺码价为 0 时沿用商品基础价。
func resolveBasePrice(product *models.Product, size *models.ProductSize) decimal.Decimal {
	if size != nil && size.PriceAmount.GreaterThan(decimal.Zero) {
		return size.PriceAmount.Decimal
	}
	if product == nil {
		return decimal.Zero
	}
	return product.PriceAmount.Decimal
}

// resolveDiscountPercent 解析生效折扣：有生效抢购活动时用活动折扣，否则用商品常驻折扣。
func resolveDiscountPercent(product *models.Product, sale *models.FlashSale, now time.Time) decimal.Decimal {
	if sale != nil && sale.ActiveAt(now) {
		return clampPercent(sale.DiscountPercent.Decimal)
	}
	if product == nil {
		return decimal.Zero
	}
	return clampPercent(product.DiscountPercent.Decimal)
}

// resolveUnitPrice 计算单价：基础价按折扣百分比打折后保留 2 位小数。
func resolveUnitPrice(product *models.Product, size *models.ProductSize, sale *models.FlashSale, now time.Time) models.Money {
	base := resolveBasePrice(product, size)
	percent := resolveDiscountPercent(product, sale, now)
	unit := base.Mul(percentBase.Sub(percent)).Div(percentBase)
	return models.NewMoneyFromDecimal(unit)
}

func clampPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if percent.GreaterThan(percentBase) {
		return percentBase
	}
	return percent
}
