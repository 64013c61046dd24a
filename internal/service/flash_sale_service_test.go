package service

import (
	"errors"
	"testing"
	"time"

	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newFlashSaleServiceForTest(db *gorm.DB) *FlashSaleService {
	return NewFlashSaleService(
		repository.NewFlashSaleRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestFlashSaleOverlapPicksDeepestDiscount(t *testing.T) {
	db := newServiceTestDB(t, "flash_overlap")
	fixture := seedStore(t, db)
	seedFlashSale(t, db, fixture.product.ID, 10, 10)
	deep := seedFlashSale(t, db, fixture.product.ID, 30, 10)

	repo := repository.NewFlashSaleRepository(db)
	sale, err := repo.GetActiveByProduct(fixture.product.ID, time.Now())
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if sale == nil || sale.ID != deep.ID {
		t.Fatalf("expected deepest discount sale %d, got %+v", deep.ID, sale)
	}
}

func TestFlashSaleListActiveOrderedAndLimited(t *testing.T) {
	db := newServiceTestDB(t, "flash_list")
	fixture := seedStore(t, db)

	percents := []int64{5, 15, 25, 35, 45}
	for _, percent := range percents {
		seedFlashSale(t, db, fixture.product.ID, percent, 10)
	}
	// 过期与停用的活动不应出现
	now := time.Now()
	expired := models.FlashSale{
		ProductID:       fixture.product.ID,
		Name:            "已结束",
		DiscountPercent: models.NewMoneyFromInt(90),
		Quantity:        10,
		StartAt:         now.Add(-2 * time.Hour),
		EndAt:           now.Add(-time.Hour),
		IsActive:        true,
	}
	disabled := models.FlashSale{
		ProductID:       fixture.product.ID,
		Name:            "已停用",
		DiscountPercent: models.NewMoneyFromInt(95),
		Quantity:        10,
		StartAt:         now.Add(-time.Hour),
		EndAt:           now.Add(time.Hour),
		IsActive:        false,
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("create expired sale failed: %v", err)
	}
	if err := db.Create(&disabled).Error; err != nil {
		t.Fatalf("create disabled sale failed: %v", err)
	}

	svc := newFlashSaleServiceForTest(db)
	views, err := svc.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(views) != len(percents) {
		t.Fatalf("expected %d active sales, got %d", len(percents), len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i].DiscountPercent.GreaterThan(views[i-1].DiscountPercent.Decimal) {
			t.Fatalf("expected descending discount order at index %d", i)
		}
	}
	// 折扣最深的排第一，带折后价与剩余配额
	if !views[0].DiscountPercent.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected 45 percent first, got %s", views[0].DiscountPercent.String())
	}
	if !views[0].EffectivePrice.Equal(decimal.NewFromInt(550000)) {
		t.Fatalf("expected effective price 550000, got %s", views[0].EffectivePrice.String())
	}
	if views[0].Remaining != 10 {
		t.Fatalf("expected remaining 10, got %d", views[0].Remaining)
	}
}

func TestFlashSaleCreateValidations(t *testing.T) {
	db := newServiceTestDB(t, "flash_validate")
	fixture := seedStore(t, db)
	svc := newFlashSaleServiceForTest(db)

	now := time.Now()
	base := SaveFlashSaleInput{
		ProductID:       fixture.product.ID,
		Name:            "周末闪购",
		DiscountPercent: models.NewMoneyFromInt(20),
		Quantity:        5,
		StartAt:         now,
		EndAt:           now.Add(time.Hour),
		IsActive:        true,
	}

	cases := []struct {
		name   string
		mutate func(input *SaveFlashSaleInput)
		want   error
	}{
		{"empty name", func(in *SaveFlashSaleInput) { in.Name = " " }, ErrFlashSaleInvalid},
		{"zero percent", func(in *SaveFlashSaleInput) { in.DiscountPercent = models.NewMoneyFromInt(0) }, ErrFlashSaleInvalid},
		{"over 100 percent", func(in *SaveFlashSaleInput) { in.DiscountPercent = models.NewMoneyFromInt(120) }, ErrFlashSaleInvalid},
		{"zero quantity", func(in *SaveFlashSaleInput) { in.Quantity = 0 }, ErrFlashSaleInvalid},
		{"end before start", func(in *SaveFlashSaleInput) { in.EndAt = in.StartAt.Add(-time.Minute) }, ErrFlashSaleInvalid},
		{"quantity over stock", func(in *SaveFlashSaleInput) { in.Quantity = 100 }, ErrFlashSaleInvalid},
		{"missing product", func(in *SaveFlashSaleInput) { in.ProductID = 9999 }, ErrProductNotFound},
	}
	for _, tc := range cases {
		input := base
		tc.mutate(&input)
		if _, err := svc.Create(input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	sale, err := svc.Create(base)
	if err != nil {
		t.Fatalf("valid create failed: %v", err)
	}
	if sale.Sold != 0 {
		t.Fatalf("expected sold starts at 0, got %d", sale.Sold)
	}
}

func TestFlashSaleUpdateKeepsSold(t *testing.T) {
	db := newServiceTestDB(t, "flash_update")
	fixture := seedStore(t, db)
	svc := newFlashSaleServiceForTest(db)

	sale := seedFlashSale(t, db, fixture.product.ID, 20, 8)
	if err := db.Model(&models.FlashSale{}).Where("id = ?", sale.ID).Update("sold", 3).Error; err != nil {
		t.Fatalf("set sold failed: %v", err)
	}

	input := SaveFlashSaleInput{
		ProductID:       fixture.product.ID,
		Name:            "改期闪购",
		DiscountPercent: models.NewMoneyFromInt(25),
		Quantity:        6,
		StartAt:         sale.StartAt,
		EndAt:           sale.EndAt,
		IsActive:        true,
	}
	updated, err := svc.Update(sale.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Sold != 3 {
		t.Fatalf("expected sold preserved, got %d", updated.Sold)
	}

	// 限量不能低于已售数量
	input.Quantity = 2
	if _, err := svc.Update(sale.ID, input); !errors.Is(err, ErrFlashSaleInvalid) {
		t.Fatalf("expected invalid when quantity below sold, got: %v", err)
	}
}

func TestFlashSaleIncrementSoldCapped(t *testing.T) {
	db := newServiceTestDB(t, "flash_sold_cap")
	fixture := seedStore(t, db)
	sale := seedFlashSale(t, db, fixture.product.ID, 20, 3)

	repo := repository.NewFlashSaleRepository(db)
	affected, err := repo.IncrementSold(sale.ID, 2)
	if err != nil || affected != 1 {
		t.Fatalf("first increment failed: affected=%d err=%v", affected, err)
	}
	// 超出配额的累加不生效
	affected, err = repo.IncrementSold(sale.ID, 2)
	if err != nil {
		t.Fatalf("capped increment errored: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected capped increment to affect 0 rows, got %d", affected)
	}

	var reloaded models.FlashSale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("load sale failed: %v", err)
	}
	if reloaded.Sold != 2 {
		t.Fatalf("expected sold 2, got %d", reloaded.Sold)
	}

	// 回退不会减成负数
	affected, err = repo.DecrementSold(sale.ID, 5)
	if err != nil {
		t.Fatalf("decrement errored: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected over-decrement to affect 0 rows, got %d", affected)
	}
}
