package main

import (
	"time"

	"github.com/solemart/solemart/internal/config"
	"github.com/solemart/solemart/internal/logger"
	"github.com/solemart/solemart/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "running", Name: "跑步鞋", SortOrder: 10},
		{Slug: "sneakers", Name: "休闲板鞋", SortOrder: 20},
		{Slug: "boots", Name: "户外靴", SortOrder: 30},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"running", "sneakers", "boots"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品（含尺码库存）
	type seedSize struct {
		size     string
		quantity int
		price    float64 // 0 表示沿用商品基础价
	}
	type seedProduct struct {
		product models.Product
		sizes   []seedSize
	}
	seedProducts := []seedProduct{
		{
			product: models.Product{
				CategoryID:  categoryIDs["running"],
				Slug:        "cloudstride-5",
				Name:        "CloudStride 5 轻量跑鞋",
				Description: "透气网面，回弹中底，适合日常路跑。",
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(89.90)),
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800"}),
				Tags:        models.StringArray([]string{"Running", "Lightweight"}),
				IsActive:    true,
				SortOrder:   10,
			},
			sizes: []seedSize{
				{size: "40", quantity: 30},
				{size: "41", quantity: 25},
				{size: "42", quantity: 20},
				{size: "43", quantity: 10, price: 94.90},
			},
		},
		{
			product: models.Product{
				CategoryID:  categoryIDs["sneakers"],
				Slug:        "walker-lite",
				Name:        "Walker Lite 帆布板鞋",
				Description: "经典帆布鞋面，耐磨橡胶大底。",
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(49.90)),
				Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77?w=800"}),
				Tags:        models.StringArray([]string{"Casual", "Canvas"}),
				IsActive:    true,
				SortOrder:   20,
			},
			sizes: []seedSize{
				{size: "39", quantity: 40},
				{size: "40", quantity: 40},
				{size: "41", quantity: 35},
			},
		},
		{
			product: models.Product{
				CategoryID:      categoryIDs["boots"],
				Slug:            "trailmaster-gtx",
				Name:            "TrailMaster GTX 登山靴",
				Description:     "防水鞋面，抓地外底，适合山地徒步。",
				PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(159.00)),
				DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
				Images:          models.StringArray([]string{"https://images.unsplash.com/photo-1520639888713-7851133b1ed0?w=800"}),
				Tags:            models.StringArray([]string{"Outdoor", "Waterproof"}),
				IsActive:        true,
				SortOrder:       30,
			},
			sizes: []seedSize{
				{size: "41", quantity: 15},
				{size: "42", quantity: 15},
				{size: "43", quantity: 8, price: 165.00},
				{size: "44", quantity: 5, price: 165.00},
			},
		},
	}

	for _, item := range seedProducts {
		var existing models.Product
		if err := models.DB.Where("slug = ?", item.product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.product.Slug)
			continue
		}
		product := item.product
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		for _, s := range item.sizes {
			size := models.ProductSize{
				ProductID: product.ID,
				Size:      s.size,
				Quantity:  s.quantity,
			}
			if s.price > 0 {
				size.PriceAmount = models.NewMoneyFromDecimal(decimal.NewFromFloat(s.price))
			}
			if err := models.DB.Create(&size).Error; err != nil {
				stdLog.Printf("Failed to create size %s/%s: %v", product.Slug, s.size, err)
			}
		}
		stdLog.Printf("Created product: %s (%d sizes)", product.Slug, len(item.sizes))
	}

	// 添加演示用户
	users := []struct {
		email    string
		name     string
		password string
	}{
		{email: "buyer@example.com", name: "演示买家", password: "buyer123"},
		{email: "runner@example.com", name: "跑者小李", password: "runner123"},
	}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", u.email, err)
			continue
		}
		user := models.User{
			Email:        u.email,
			Name:         u.name,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.email, err)
		} else {
			stdLog.Printf("Created user: %s", u.email)
		}
	}

	// 添加一场进行中的限时抢购
	var runningShoe models.Product
	if err := models.DB.Where("slug = ?", "cloudstride-5").First(&runningShoe).Error; err == nil {
		var existing models.FlashSale
		if err := models.DB.Where("product_id = ? AND name = ?", runningShoe.ID, "开季闪购").First(&existing).Error; err != nil {
			now := time.Now()
			sale := models.FlashSale{
				ProductID:       runningShoe.ID,
				Name:            "开季闪购",
				DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
				Quantity:        50,
				StartAt:         now.Add(-time.Hour),
				EndAt:           now.Add(72 * time.Hour),
				IsActive:        true,
			}
			if err := models.DB.Create(&sale).Error; err != nil {
				stdLog.Printf("Failed to create flash sale: %v", err)
			} else {
				stdLog.Printf("Created flash sale: %s", sale.Name)
			}
		} else {
			stdLog.Printf("Flash sale already exists: %s", existing.Name)
		}
	}

	stdLog.Printf("Seed finished")
}
