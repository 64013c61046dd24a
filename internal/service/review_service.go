package service

import (
	"errors"
	"strings"

	"github.com/solemart/solemart/internal/constants"
	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"

	"gorm.io/gorm"
)

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	UserID    uint
	ProductID uint
	OrderID   uint
	Rating    int
	Comment   string
}

// ProductReviewSummary 商品评价汇总
type ProductReviewSummary struct {
	Reviews       []models.Review `json:"reviews"`
	Total         int64           `json:"total"`
	RatingAverage float64         `json:"rating_average"`
	RatingCount   int64           `json:"rating_count"`
}

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create 创建评价。
// 资格门槛：订单属于本人、已签收且包含该商品；同一 (用户, 商品, 订单) 只允许一条。
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 || input.ProductID == 0 || input.OrderID == 0 {
		return nil, ErrReviewOrderInvalid
	}
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrReviewRatingInvalid
	}

	order, err := s.orderRepo.GetByIDAndUser(input.OrderID, input.UserID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil || order.Status != constants.OrderStatusDelivered {
		return nil, ErrReviewOrderInvalid
	}
	containsProduct := false
	for _, detail := range order.Details {
		if detail.ProductID == input.ProductID {
			containsProduct = true
			break
		}
	}
	if !containsProduct {
		return nil, ErrReviewOrderInvalid
	}

	count, err := s.reviewRepo.CountByUserProductOrder(input.UserID, input.ProductID, input.OrderID)
	if err != nil {
		return nil, ErrReviewFetchFailed
	}
	if count > 0 {
		return nil, ErrReviewDuplicate
	}

	review := &models.Review{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewDuplicate
		}
		return nil, ErrReviewCreateFailed
	}
	return review, nil
}

// ListByProduct 商品可见评价列表，附带平均分。
func (s *ReviewService) ListByProduct(productID uint, page, pageSize int) (*ProductReviewSummary, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, ErrProductFetchFailed
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	reviews, total, err := s.reviewRepo.List(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
	if err != nil {
		return nil, ErrReviewFetchFailed
	}
	avg, count, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, ErrReviewFetchFailed
	}
	return &ProductReviewSummary{
		Reviews:       reviews,
		Total:         total,
		RatingAverage: avg,
		RatingCount:   count,
	}, nil
}

// ListForAdmin 后台评价列表，含已隐藏评价。
func (s *ReviewService) ListForAdmin(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	filter.IncludeHidden = true
	reviews, total, err := s.reviewRepo.List(filter)
	if err != nil {
		return nil, 0, ErrReviewFetchFailed
	}
	return reviews, total, nil
}

// SetVisibility 评价隐藏/恢复
func (s *ReviewService) SetVisibility(reviewID uint, hidden bool) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, ErrReviewFetchFailed
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.IsHidden == hidden {
		return review, nil
	}
	review.IsHidden = hidden
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, ErrReviewUpdateFailed
	}
	return review, nil
}

// Delete 删除评价
func (s *ReviewService) Delete(reviewID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return ErrReviewFetchFailed
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return ErrReviewUpdateFailed
	}
	return nil
}
