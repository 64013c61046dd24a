package provider

import (
	"github.com/solemart/solemart/internal/cache"
	"github.com/solemart/solemart/internal/config"
	"github.com/solemart/solemart/internal/logger"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/queue"
	"github.com/solemart/solemart/internal/repository"
	"github.com/solemart/solemart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	AdminRepo       repository.AdminRepository
	CategoryRepo    repository.CategoryRepository
	ProductRepo     repository.ProductRepository
	ProductSizeRepo repository.ProductSizeRepository
	FlashSaleRepo   repository.FlashSaleRepository
	CartRepo        repository.CartRepository
	OrderRepo       repository.OrderRepository
	PaymentRepo     repository.PaymentRepository
	ShippingRepo    repository.ShippingRepository
	ReviewRepo      repository.ReviewRepository

	// Services
	CategoryService  *service.CategoryService
	ProductService   *service.ProductService
	FlashSaleService *service.FlashSaleService
	CartService      *service.CartService
	OrderService     *service.OrderService
	PaymentService   *service.PaymentService
	ShippingService  *service.ShippingService
	ReviewService    *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductSizeRepo = repository.NewProductSizeRepository(db)
	c.FlashSaleRepo = repository.NewFlashSaleRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.ShippingRepo = repository.NewShippingRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ProductSizeRepo, c.CategoryRepo, c.FlashSaleRepo, c.ReviewRepo)
	c.FlashSaleService = service.NewFlashSaleService(c.FlashSaleRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.ProductSizeRepo, c.FlashSaleRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.ProductSizeRepo, c.FlashSaleRepo, c.PaymentRepo, c.ShippingRepo, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo)
	c.ShippingService = service.NewShippingService(c.ShippingRepo, c.OrderRepo, c.QueueClient, c.Config.Order.AutoCompleteDays)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductRepo)
}
