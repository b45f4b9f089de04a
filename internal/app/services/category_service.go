package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/domain"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/validation"
)

// CategoryService handles category and category class operations
type CategoryService struct {
	categoryRepo *repositories.CategoryRepository
	classRepo    *repositories.CategoryClassRepository
	voteRepo     *repositories.VoteRepository
}

// NewCategoryService creates a new category service instance
func NewCategoryService(categoryRepo *repositories.CategoryRepository, classRepo *repositories.CategoryClassRepository, voteRepo *repositories.VoteRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		classRepo:    classRepo,
		voteRepo:     voteRepo,
	}
}

func categoryFromRequest(req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name cannot be empty")
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = validation.Slugify(name)
	}
	if !validation.CompiledPatterns.Slug.MatchString(slug) {
		return nil, apperrors.NewValidationError("slug must be lowercase words joined by hyphens")
	}

	if req.MaxVideoDuration != nil && *req.MaxVideoDuration > domain.MaxVideoDurationSeconds {
		return nil, apperrors.NewValidationError("video duration cap exceeds the global maximum")
	}
	if req.MaxAudioDuration != nil && *req.MaxAudioDuration > domain.MaxAudioDurationSeconds {
		return nil, apperrors.NewValidationError("audio duration cap exceeds the global maximum")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &models.Category{
		ClassID:           req.ClassID,
		Name:              name,
		Slug:              slug,
		Description:       strings.TrimSpace(req.Description),
		IsActive:          isActive,
		RequiresPhoto:     req.RequiresPhoto,
		RequiresVideo:     req.RequiresVideo,
		RequiresAudio:     req.RequiresAudio,
		RequiresPortfolio: req.RequiresPortfolio,
		RequiresDocuments: req.RequiresDocuments,
		MaxVideoDuration:  req.MaxVideoDuration,
		MaxAudioDuration:  req.MaxAudioDuration,
	}, nil
}

// CategoryToResponse converts a category model into its public view
func CategoryToResponse(category *models.Category) dto.CategoryResponse {
	kinds := category.RequiredKinds()
	kindNames := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		kindNames = append(kindNames, string(kind))
	}

	resp := dto.CategoryResponse{
		ID:               category.ID,
		ClassID:          category.ClassID,
		Name:             category.Name,
		Slug:             category.Slug,
		Description:      category.Description,
		IsActive:         category.IsActive,
		RequiredKinds:    kindNames,
		MaxVideoDuration: category.MaxVideoDuration,
		MaxAudioDuration: category.MaxAudioDuration,
		CreatedAt:        category.CreatedAt,
	}
	if category.Class != nil {
		resp.ClassName = category.Class.Name
	}
	return resp
}

// CreateCategory creates a new award category
func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category, err := categoryFromRequest(req)
	if err != nil {
		return nil, err
	}

	if category.ClassID != nil {
		if _, err := s.classRepo.GetByID(ctx, *category.ClassID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategoryByID retrieves a category and attaches its class when present
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid category ID")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.attachClass(ctx, category)
	return category, nil
}

// GetCategoryBySlug retrieves a category by its slug
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.attachClass(ctx, category)
	return category, nil
}

// GetAllCategories retrieves categories matching the given filters
func (s *CategoryService) GetAllCategories(ctx context.Context, params repositories.GetCategoriesParams) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}

	for _, category := range categories {
		s.attachClass(ctx, category)
	}

	return categories, nil
}

func (s *CategoryService) attachClass(ctx context.Context, category *models.Category) {
	if category.ClassID == nil {
		return
	}
	class, err := s.classRepo.GetByID(ctx, *category.ClassID)
	if err == nil {
		category.Class = class
	}
}

// UpdateCategory updates an existing category's configuration
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid category ID")
	}

	category, err := categoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	category.ID = id

	if category.ClassID != nil {
		if _, err := s.classRepo.GetByID(ctx, *category.ClassID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.GetCategoryByID(ctx, id)
}

// SetCategoryActive soft-enables or soft-disables a category
func (s *CategoryService) SetCategoryActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid category ID")
	}

	return s.categoryRepo.SetActive(ctx, id, active)
}

// DeleteCategory removes a category with no candidatures
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid category ID")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// GetCategoryStats returns candidature and vote totals for one category
func (s *CategoryService) GetCategoryStats(ctx context.Context, id int64) (*dto.CategoryStatsResponse, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.GetStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving category stats: %w", err)
	}

	stats := dto.StatusCounts{}
	for _, c := range counts {
		if c.CategoryID == id {
			stats = dto.StatusCounts{
				Total:    c.Pending + c.Approved + c.Rejected,
				Pending:  c.Pending,
				Approved: c.Approved,
				Rejected: c.Rejected,
			}
			break
		}
	}

	totalVotes, err := s.voteRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CategoryStatsResponse{
		Category:     CategoryToResponse(category),
		Candidatures: stats,
		TotalVotes:   totalVotes,
	}, nil
}

// CreateCategoryClass creates a new category class
func (s *CategoryService) CreateCategoryClass(ctx context.Context, req *dto.CreateCategoryClassRequest) (*models.CategoryClass, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("class name cannot be empty")
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = validation.Slugify(name)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	class := &models.CategoryClass{
		Name:         name,
		Slug:         slug,
		Description:  strings.TrimSpace(req.Description),
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

// GetCategoryClasses retrieves category classes ordered for display
func (s *CategoryService) GetCategoryClasses(ctx context.Context, onlyActive bool) ([]*models.CategoryClass, error) {
	return s.classRepo.GetAll(ctx, onlyActive)
}
