package service

import (
	"errors"
	"testing"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"gorm.io/gorm"
)

func newProductServiceForTest(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductSizeRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewFlashSaleRepository(db),
		repository.NewReviewRepository(db),
	)
}

func TestProductListOnlyActive(t *testing.T) {
	db := newServiceTestDB(t, "product_list")
	fixture := seedStore(t, db)
	svc := newProductServiceForTest(db)

	hidden := models.Product{
		CategoryID:  fixture.category.ID,
		Slug:        "retired-model",
		Name:        "Retired Model",
		PriceAmount: models.NewMoneyFromInt(500000),
		IsActive:    false,
	}
	if err := db.Create(&hidden).Error; err != nil {
		t.Fatalf("create hidden product failed: %v", err)
	}

	views, total, err := svc.List(repository.ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("active list want 1 got total=%d len=%d", total, len(views))
	}
	if views[0].Product.Slug != fixture.product.Slug {
		t.Fatalf("unexpected product in active list: %s", views[0].Product.Slug)
	}

	_, total, err = svc.List(repository.ProductListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("full list want 2 got %d", total)
	}
}

func TestProductDetailFlashPricing(t *testing.T) {
	db := newServiceTestDB(t, "product_detail_flash")
	fixture := seedStore(t, db)
	seedFlashSale(t, db, fixture.product.ID, 20, 10)
	svc := newProductServiceForTest(db)

	view, err := svc.GetByID(fixture.product.ID, true)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if view.FlashSale == nil {
		t.Fatalf("expected flash sale attached to detail view")
	}
	if !view.OriginalPrice.Equal(models.NewMoneyFromInt(1000000).Decimal) {
		t.Fatalf("original price want 1000000 got %s", view.OriginalPrice)
	}
	if !view.EffectivePrice.Equal(models.NewMoneyFromInt(800000).Decimal) {
		t.Fatalf("effective price want 800000 got %s", view.EffectivePrice)
	}
	if len(view.Sizes) != 2 {
		t.Fatalf("size views want 2 got %d", len(view.Sizes))
	}
	for _, size := range view.Sizes {
		if !size.EffectivePrice.Equal(models.NewMoneyFromInt(800000).Decimal) {
			t.Fatalf("size %s effective price want 800000 got %s", size.Size, size.EffectivePrice)
		}
	}
}

func TestProductStockStatus(t *testing.T) {
	db := newServiceTestDB(t, "product_stock_status")
	fixture := seedStore(t, db)
	svc := newProductServiceForTest(db)

	view, err := svc.GetBySlug("runner-pro", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if view.TotalStock != 8 {
		t.Fatalf("total stock want 8 got %d", view.TotalStock)
	}
	if view.StockStatus != constants.ProductStockStatusInStock {
		t.Fatalf("stock status want in_stock got %s", view.StockStatus)
	}

	if err := db.Model(&models.ProductSize{}).Where("id = ?", fixture.sizeM.ID).Update("quantity", 1).Error; err != nil {
		t.Fatalf("drain size M failed: %v", err)
	}
	view, err = svc.GetBySlug("runner-pro", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if view.StockStatus != constants.ProductStockStatusLowStock {
		t.Fatalf("stock status want low_stock got %s", view.StockStatus)
	}

	if err := db.Model(&models.ProductSize{}).Where("product_id = ?", fixture.product.ID).Update("quantity", 0).Error; err != nil {
		t.Fatalf("drain sizes failed: %v", err)
	}
	view, err = svc.GetBySlug("runner-pro", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if view.StockStatus != constants.ProductStockStatusOutOfStock {
		t.Fatalf("stock status want out_of_stock got %s", view.StockStatus)
	}
}

func TestProductGetMissing(t *testing.T) {
	db := newServiceTestDB(t, "product_missing")
	fixture := seedStore(t, db)
	svc := newProductServiceForTest(db)

	if _, err := svc.GetByID(9999, true); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing id want ErrProductNotFound got %v", err)
	}
	if _, err := svc.GetBySlug("no-such-shoe", true); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing slug want ErrProductNotFound got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", fixture.product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if _, err := svc.GetByID(fixture.product.ID, true); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product want ErrProductNotFound got %v", err)
	}
	if _, err := svc.GetByID(fixture.product.ID, false); err != nil {
		t.Fatalf("admin fetch of inactive product failed: %v", err)
	}
}

func TestProductCreateValidation(t *testing.T) {
	db := newServiceTestDB(t, "product_create")
	fixture := seedStore(t, db)
	svc := newProductServiceForTest(db)

	input := SaveProductInput{
		CategoryID:  fixture.category.ID,
		Slug:        "runner-pro",
		Name:        "Runner Pro Copy",
		PriceAmount: models.NewMoneyFromInt(900000),
		IsActive:    true,
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("duplicate slug want ErrProductInvalid got %v", err)
	}

	input.Slug = "court-ace"
	input.CategoryID = 9999
	if _, err := svc.Create(input); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("missing category want ErrProductInvalid got %v", err)
	}

	input.CategoryID = fixture.category.ID
	input.Sizes = []SaveProductSizeInput{{Size: "M", Quantity: -1}}
	if _, err := svc.Create(input); !errors.Is(err, ErrSizeInvalid) {
		t.Fatalf("negative size quantity want ErrSizeInvalid got %v", err)
	}

	input.Sizes = []SaveProductSizeInput{{Size: "M", Quantity: 4}, {Size: "L", Quantity: 2}}
	product, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.ID == 0 || len(product.Sizes) != 2 {
		t.Fatalf("created product should persist with sizes, got id=%d sizes=%d", product.ID, len(product.Sizes))
	}
}

func TestProductUpsertSize(t *testing.T) {
	db := newServiceTestDB(t, "product_upsert_size")
	fixture := seedStore(t, db)
	svc := newProductServiceForTest(db)

	updated, err := svc.UpsertSize(fixture.product.ID, SaveProductSizeInput{Size: "M", Quantity: 12})
	if err != nil {
		t.Fatalf("upsert existing size failed: %v", err)
	}
	if updated.ID != fixture.sizeM.ID || updated.Quantity != 12 {
		t.Fatalf("existing size should be updated in place, got id=%d qty=%d", updated.ID, updated.Quantity)
	}

	created, err := svc.UpsertSize(fixture.product.ID, SaveProductSizeInput{Size: "XL", Quantity: 6})
	if err != nil {
		t.Fatalf("upsert new size failed: %v", err)
	}
	if created.ID == 0 || created.Size != "XL" {
		t.Fatalf("new size should be created, got id=%d size=%s", created.ID, created.Size)
	}

	if _, err := svc.UpsertSize(fixture.product.ID, SaveProductSizeInput{Size: " ", Quantity: 1}); !errors.Is(err, ErrSizeInvalid) {
		t.Fatalf("blank size want ErrSizeInvalid got %v", err)
	}
	if _, err := svc.UpsertSize(9999, SaveProductSizeInput{Size: "M", Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
}
