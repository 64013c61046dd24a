package service

import (
	"errors"
	"strings"

	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/repository"
)

// ErrCategoryNotFound 分类不存在
var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryInvalid 分类参数无效或仍有商品挂载
var ErrCategoryInvalid = errors.New("category invalid")

// SaveCategoryInput 分类写入输入
type SaveCategoryInput struct {
	Slug      string
	Name      string
	Icon      string
	SortOrder int
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Create 创建分类
func (s *CategoryService) Create(input SaveCategoryInput) (*models.Category, error) {
	if err := s.validateSaveInput(input, nil); err != nil {
		return nil, err
	}
	category := &models.Category{
		Slug:      strings.TrimSpace(input.Slug),
		Name:      strings.TrimSpace(input.Name),
		Icon:      strings.TrimSpace(input.Icon),
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input SaveCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.validateSaveInput(input, &id); err != nil {
		return nil, err
	}
	category.Slug = strings.TrimSpace(input.Slug)
	category.Name = strings.TrimSpace(input.Name)
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍有商品挂载时拒绝。
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInvalid
	}
	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) validateSaveInput(input SaveCategoryInput, excludeID *uint) error {
	if strings.TrimSpace(input.Slug) == "" || strings.TrimSpace(input.Name) == "" {
		return ErrCategoryInvalid
	}
	count, err := s.categoryRepo.CountBySlug(strings.TrimSpace(input.Slug), excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInvalid
	}
	return nil
}
