package service

import (
	"strings"

	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Description string
	SortOrder   int
	IsActive    *bool
}

// SubcategoryInput 创建/更新子分类输入
type SubcategoryInput struct {
	CategoryID  uint
	Name        string
	Description string
	SortOrder   int
	IsActive    *bool
}

// List 获取分类列表
func (s *CategoryService) List(onlyActive bool) ([]models.Category, error) {
	return s.repo.List(onlyActive, true)
}

// GetByID 根据 ID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
// 名称不区分大小写去重。
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingField
	}

	exist, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCategoryExists
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingField
	}
	exist, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrCategoryExists
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类
// 仍有商品挂在分类下时拒绝删除。
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

// ListSubcategories 获取子分类列表
func (s *CategoryService) ListSubcategories(categoryID uint, onlyActive bool) ([]models.Subcategory, error) {
	category, err := s.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListSubcategories(categoryID, onlyActive)
}

// CreateSubcategory 创建子分类
// 同一分类下名称不区分大小写去重。
func (s *CategoryService) CreateSubcategory(input SubcategoryInput) (*models.Subcategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingField
	}
	category, err := s.repo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	exist, err := s.repo.GetSubcategoryByName(input.CategoryID, name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCategoryExists
	}

	sub := models.Subcategory{
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		sub.IsActive = *input.IsActive
	}
	if err := s.repo.CreateSubcategory(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubcategory 更新子分类
func (s *CategoryService) UpdateSubcategory(id uint, input SubcategoryInput) (*models.Subcategory, error) {
	sub, err := s.repo.GetSubcategoryByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingField
	}
	exist, err := s.repo.GetSubcategoryByName(sub.CategoryID, name)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrCategoryExists
	}

	sub.Name = name
	sub.Description = strings.TrimSpace(input.Description)
	sub.SortOrder = input.SortOrder
	if input.IsActive != nil {
		sub.IsActive = *input.IsActive
	}
	if err := s.repo.UpdateSubcategory(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubcategory 删除子分类
func (s *CategoryService) DeleteSubcategory(id uint) error {
	sub, err := s.repo.GetSubcategoryByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNotFound
	}

	count, err := s.repo.CountSubcategoryProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.DeleteSubcategory(id)
}
