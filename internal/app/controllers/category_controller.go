package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/app/services"
	"github.com/makona/awards-backend/internal/middleware"
)

// CategoryController handles category, category class and standings endpoints
type CategoryController struct {
	categoryService *services.CategoryService
	voteService     *services.VoteService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService, voteService *services.VoteService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		voteService:     voteService,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description List award categories. Non-admin callers only see active ones.
// @Tags categories
// @Produce json
// @Param classId query int false "Filter by category class"
// @Param search query string false "Search in name and description"
// @Param includeInactive query bool false "Include inactive categories (admin only)"
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse}
// @Router /categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	params := repositories.GetCategoriesParams{
		OnlyActive: true,
		Search:     ctx.Query("search"),
	}

	if classStr := ctx.Query("classId"); classStr != "" {
		classID, err := strconv.ParseInt(classStr, 10, 64)
		if err != nil || classID <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid class ID").WithField("classId"),
			})
			return
		}
		params.ClassID = &classID
	}

	// Only admins may look behind the active flag.
	if ctx.Query("includeInactive") == "true" && currentRole(ctx) == "ADMIN" {
		params.OnlyActive = false
	}

	categories, err := c.categoryService.GetAllCategories(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, services.CategoryToResponse(category))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses, ""))
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("id"),
		})
		return
	}

	category, err := c.categoryService.GetCategoryByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(services.CategoryToResponse(category), ""))
}

// GetCategoryBySlug godoc
// @Summary Get a category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /categories/slug/{slug} [get]
func (c *CategoryController) GetCategoryBySlug(ctx *gin.Context) {
	category, err := c.categoryService.GetCategoryBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(services.CategoryToResponse(category), ""))
}

// GetStandings godoc
// @Summary Category standings
// @Description Ranked list of approved, published candidatures by vote count
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryStandingsResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /categories/{id}/standings [get]
func (c *CategoryController) GetStandings(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("id"),
		})
		return
	}

	standings, err := c.voteService.GetStandings(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(standings, ""))
}

// GetStandingsBySlug godoc
// @Summary Category standings by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryStandingsResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /categories/slug/{slug}/standings [get]
func (c *CategoryController) GetStandingsBySlug(ctx *gin.Context) {
	standings, err := c.voteService.GetStandingsBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(standings, ""))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category payload").WithDetails(err.Error()),
		})
		return
	}

	category, err := c.categoryService.CreateCategory(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(services.CategoryToResponse(category), "Category created"))
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("id"),
		})
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category payload").WithDetails(err.Error()),
		})
		return
	}

	category, err := c.categoryService.UpdateCategory(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(services.CategoryToResponse(category), "Category updated"))
}

// SetCategoryActive godoc
// @Summary Activate or deactivate a category
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Param request body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} dto.APIResponse
// @Router /admin/categories/{id}/active [patch]
func (c *CategoryController) SetCategoryActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("id"),
		})
		return
	}

	var req dto.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Active flag is required").WithField("isActive"),
		})
		return
	}

	if err := c.categoryService.SetCategoryActive(ctx.Request.Context(), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Category updated"))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category that has no candidatures
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("id"),
		})
		return
	}

	if err := c.categoryService.DeleteCategory(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Category deleted"))
}

// GetCategoryStats godoc
// @Summary Category statistics
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryStatsResponse}
// @Router /admin/categories/{id}/stats [get]
func (c *CategoryController) GetCategoryStats(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("id"),
		})
		return
	}

	stats, err := c.categoryService.GetCategoryStats(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}

// ListCategoryClasses godoc
// @Summary List category classes
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.CategoryClass}
// @Router /category-classes [get]
func (c *CategoryController) ListCategoryClasses(ctx *gin.Context) {
	onlyActive := currentRole(ctx) != "ADMIN" || ctx.Query("includeInactive") != "true"

	classes, err := c.categoryService.GetCategoryClasses(ctx.Request.Context(), onlyActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes, ""))
}

// CreateCategoryClass godoc
// @Summary Create a category class
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCategoryClassRequest true "Class data"
// @Success 201 {object} dto.APIResponse{data=models.CategoryClass}
// @Router /admin/category-classes [post]
func (c *CategoryController) CreateCategoryClass(ctx *gin.Context) {
	var req dto.CreateCategoryClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid class payload").WithDetails(err.Error()),
		})
		return
	}

	class, err := c.categoryService.CreateCategoryClass(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(class, "Category class created"))
}
