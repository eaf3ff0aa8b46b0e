package service

import (
	"strings"

	"github.com/petshop-next/internal/config"
	"github.com/petshop-next/internal/constants"
	"github.com/petshop-next/internal/logger"
	"github.com/petshop-next/internal/models"
	"github.com/petshop-next/internal/queue"
	"github.com/petshop-next/internal/repository"
)

// CarouselService 首页轮播图业务服务
type CarouselService struct {
	cfg         *config.Config
	repo        repository.CarouselRepository
	queueClient *queue.Client
}

// NewCarouselService 创建轮播图服务
func NewCarouselService(cfg *config.Config, repo repository.CarouselRepository, queueClient *queue.Client) *CarouselService {
	return &CarouselService{
		cfg:         cfg,
		repo:        repo,
		queueClient: queueClient,
	}
}

// CarouselInput 创建/更新轮播图输入
type CarouselInput struct {
	Title     string
	Image     string
	LinkURL   string
	SortOrder int
	IsActive  *bool
}

// ListPublic 公开轮播图列表（仅启用项，按展示顺序）
func (s *CarouselService) ListPublic() ([]models.CarouselImage, error) {
	return s.repo.List(true)
}

// ListAdmin 后台轮播图列表
func (s *CarouselService) ListAdmin() ([]models.CarouselImage, error) {
	return s.repo.List(false)
}

// GetByID 根据 ID 获取轮播图
func (s *CarouselService) GetByID(id uint) (*models.CarouselImage, error) {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrNotFound
	}
	return image, nil
}

// Create 创建轮播图
// 总数受上限约束，展示顺序在上限范围内且唯一。
func (s *CarouselService) Create(input CarouselInput) (*models.CarouselImage, error) {
	image := strings.TrimSpace(input.Image)
	if image == "" {
		return nil, ErrMissingField
	}
	if input.SortOrder < 1 || input.SortOrder > s.maxImages() {
		return nil, ErrCarouselOrderTaken
	}

	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxImages()) {
		return nil, ErrCarouselFull
	}

	exist, err := s.repo.GetBySortOrder(input.SortOrder)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCarouselOrderTaken
	}

	entity := &models.CarouselImage{
		Title:     strings.TrimSpace(input.Title),
		Image:     image,
		LinkURL:   strings.TrimSpace(input.LinkURL),
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		entity.IsActive = *input.IsActive
	}
	if err := s.repo.Create(entity); err != nil {
		return nil, err
	}
	s.publishChanged(entity.ID, "upsert")
	return entity, nil
}

// Update 更新轮播图
func (s *CarouselService) Update(id uint, input CarouselInput) (*models.CarouselImage, error) {
	entity, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrNotFound
	}

	image := strings.TrimSpace(input.Image)
	if image == "" {
		return nil, ErrMissingField
	}
	if input.SortOrder < 1 || input.SortOrder > s.maxImages() {
		return nil, ErrCarouselOrderTaken
	}

	exist, err := s.repo.GetBySortOrder(input.SortOrder)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrCarouselOrderTaken
	}

	entity.Title = strings.TrimSpace(input.Title)
	entity.Image = image
	entity.LinkURL = strings.TrimSpace(input.LinkURL)
	entity.SortOrder = input.SortOrder
	if input.IsActive != nil {
		entity.IsActive = *input.IsActive
	}
	if err := s.repo.Update(entity); err != nil {
		return nil, err
	}
	s.publishChanged(entity.ID, "upsert")
	return entity, nil
}

// Delete 删除轮播图
func (s *CarouselService) Delete(id uint) error {
	entity, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if entity == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishChanged(id, "delete")
	return nil
}

func (s *CarouselService) maxImages() int {
	if s.cfg == nil || s.cfg.Carousel.MaxImages <= 0 {
		return constants.CarouselMaxImages
	}
	return s.cfg.Carousel.MaxImages
}

func (s *CarouselService) publishChanged(imageID uint, action string) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueCarouselChanged(queue.CarouselChangedPayload{
		ImageID: imageID,
		Action:  action,
	})
	if err != nil {
		logger.Warnw("enqueue_carousel_changed_failed", "image_id", imageID, "action", action, "error", err)
	}
}
