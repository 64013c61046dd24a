package service

import (
	"testing"
	"time"

	"github.com/solemart/solemart/internal/models"

	"github.com/shopspring/decimal"
)

func TestResolveUnitPriceFlashSaleWins(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		PriceAmount:     models.NewMoneyFromInt(1000000),
		DiscountPercent: models.NewMoneyFromInt(5),
	}
	sale := &models.FlashSale{
		DiscountPercent: models.NewMoneyFromInt(20),
		StartAt:         now.Add(-time.Hour),
		EndAt:           now.Add(time.Hour),
		IsActive:        true,
	}
	got := resolveUnitPrice(product, nil, sale, now)
	if !got.Equal(decimal.NewFromInt(800000)) {
		t.Fatalf("expected 800000, got %s", got.String())
	}
}

func TestResolveUnitPriceFallsBackToProductDiscount(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		PriceAmount:     models.NewMoneyFromInt(1000000),
		DiscountPercent: models.NewMoneyFromInt(5),
	}
	expired := &models.FlashSale{
		DiscountPercent: models.NewMoneyFromInt(20),
		StartAt:         now.Add(-2 * time.Hour),
		EndAt:           now.Add(-time.Hour),
		IsActive:        true,
	}
	got := resolveUnitPrice(product, nil, expired, now)
	if !got.Equal(decimal.NewFromInt(950000)) {
		t.Fatalf("expected 950000, got %s", got.String())
	}
	got = resolveUnitPrice(product, nil, nil, now)
	if !got.Equal(decimal.NewFromInt(950000)) {
		t.Fatalf("expected 950000 without sale, got %s", got.String())
	}
}

func TestResolveUnitPriceSizeOverridesBasePrice(t *testing.T) {
	now := time.Now()
	product := &models.Product{PriceAmount: models.NewMoneyFromInt(1000000)}
	size := &models.ProductSize{PriceAmount: models.NewMoneyFromInt(1200000)}
	got := resolveUnitPrice(product, size, nil, now)
	if !got.Equal(decimal.NewFromInt(1200000)) {
		t.Fatalf("expected 1200000, got %s", got.String())
	}

	// 尺码价为 0 时沿用商品基础价
	zeroSize := &models.ProductSize{}
	got = resolveUnitPrice(product, zeroSize, nil, now)
	if !got.Equal(decimal.NewFromInt(1000000)) {
		t.Fatalf("expected 1000000, got %s", got.String())
	}
}

func TestResolveUnitPriceRoundsToTwoDecimals(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		PriceAmount:     models.NewMoneyFromDecimal(decimal.RequireFromString("99.99")),
		DiscountPercent: models.NewMoneyFromInt(33),
	}
	got := resolveUnitPrice(product, nil, nil, now)
	if !got.Equal(decimal.RequireFromString("66.99")) {
		t.Fatalf("expected 66.99, got %s", got.String())
	}
}

func TestClampPercent(t *testing.T) {
	if !clampPercent(decimal.NewFromInt(-5)).Equal(decimal.Zero) {
		t.Fatalf("negative percent should clamp to 0")
	}
	if !clampPercent(decimal.NewFromInt(150)).Equal(decimal.NewFromInt(100)) {
		t.Fatalf("over 100 percent should clamp to 100")
	}
	if !clampPercent(decimal.NewFromInt(20)).Equal(decimal.NewFromInt(20)) {
		t.Fatalf("in-range percent should pass through")
	}
}
