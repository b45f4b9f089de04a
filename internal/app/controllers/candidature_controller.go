package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/app/services"
	"github.com/makona/awards-backend/internal/domain"
	"github.com/makona/awards-backend/internal/middleware"
	"github.com/makona/awards-backend/internal/pkg/helpers"
)

// CandidatureController handles candidature submission, review and publication
type CandidatureController struct {
	candidatureService *services.CandidatureService
}

// NewCandidatureController creates a new CandidatureController
func NewCandidatureController(candidatureService *services.CandidatureService) *CandidatureController {
	return &CandidatureController{
		candidatureService: candidatureService,
	}
}

// collectUploads gathers attachment uploads from a multipart form. Files
// arrive under "<kind>_files" keys (for example "photo_files"); optional
// per-file durations and titles ride along in the index-aligned
// "<kind>_durations" and "<kind>_titles" arrays.
func collectUploads(ctx *gin.Context, form *multipart.Form) ([]services.FileUpload, error) {
	uploads := make([]services.FileUpload, 0)

	keys := make([]string, 0, len(domain.AllKinds)+1)
	for _, kind := range domain.AllKinds {
		keys = append(keys, string(kind))
	}
	// "documents" is accepted as an alias for "document".
	keys = append(keys, "documents")

	for _, key := range keys {
		headers := form.File[key+"_files"]
		if len(headers) == 0 {
			continue
		}

		durations := ctx.PostFormArray(key + "_durations")
		titles := ctx.PostFormArray(key + "_titles")

		for i, header := range headers {
			upload := services.FileUpload{
				Kind:   key,
				Header: header,
			}
			if i < len(durations) && strings.TrimSpace(durations[i]) != "" {
				seconds, err := strconv.Atoi(strings.TrimSpace(durations[i]))
				if err != nil {
					return nil, fmt.Errorf("invalid duration for %s file %d", key, i+1)
				}
				upload.DurationSeconds = &seconds
			}
			if i < len(titles) {
				upload.Title = strings.TrimSpace(titles[i])
			}
			uploads = append(uploads, upload)
		}
	}

	return uploads, nil
}

// Submit godoc
// @Summary Submit a candidature
// @Description Submit a candidature to a category with its attachments in one multipart request
// @Tags candidatures
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId formData int true "Category ID"
// @Param description formData string false "Presentation text"
// @Param photo_files formData file false "Photo attachments"
// @Param video_files formData file false "Video attachments"
// @Param audio_files formData file false "Audio attachments"
// @Success 201 {object} dto.APIResponse{data=dto.CandidatureResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /candidatures [post]
func (c *CandidatureController) Submit(ctx *gin.Context) {
	candidateID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	categoryID, err := strconv.ParseInt(ctx.PostForm("categoryId"), 10, 64)
	if err != nil || categoryID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("categoryId"),
		})
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form").WithDetails(err.Error()),
		})
		return
	}

	uploads, err := collectUploads(ctx, form)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidFile, err.Error()),
		})
		return
	}

	candidature, err := c.candidatureService.Submit(ctx.Request.Context(), candidateID, categoryID, ctx.PostForm("description"), uploads)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(candidature, "Candidature submitted"))
}

// Modify godoc
// @Summary Modify a pending candidature
// @Description Update the description and optionally replace every attachment of an owned pending candidature
// @Tags candidatures
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Param description formData string false "New presentation text"
// @Success 200 {object} dto.APIResponse{data=dto.CandidatureResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /candidatures/{id} [put]
func (c *CandidatureController) Modify(ctx *gin.Context) {
	candidateID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form").WithDetails(err.Error()),
		})
		return
	}

	var description *string
	if values, exists := form.Value["description"]; exists && len(values) > 0 {
		description = &values[0]
	}

	uploads, err := collectUploads(ctx, form)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidFile, err.Error()),
		})
		return
	}

	candidature, err := c.candidatureService.Modify(ctx.Request.Context(), candidateID, id, description, uploads)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidature, "Candidature updated"))
}

// GetCandidature godoc
// @Summary Get a candidature
// @Description Public candidature detail. Only approved, published candidatures are visible to unauthenticated callers.
// @Tags candidatures
// @Produce json
// @Param id path int true "Candidature ID"
// @Success 200 {object} dto.APIResponse{data=dto.CandidatureResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /candidatures/{id} [get]
func (c *CandidatureController) GetCandidature(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	candidature, err := c.candidatureService.GetCandidature(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Non-public candidatures exist only for their owner and admins.
	if !(candidature.Status == string(models.StatusApproved) && candidature.Published) {
		userID, authed := currentUserID(ctx)
		if !authed || (userID != candidature.CandidateID && currentRole(ctx) != "ADMIN") {
			ctx.JSON(http.StatusNotFound, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Candidature not found"),
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidature, ""))
}

// ListPublished godoc
// @Summary List published candidatures
// @Description Public list of approved and published candidatures, optionally scoped to a category
// @Tags candidatures
// @Produce json
// @Param categoryId query int false "Category ID"
// @Param search query string false "Search in candidate name and email"
// @Param sortBy query string false "Sort key" Enums(submittedAt, status, category, candidate)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /candidatures [get]
func (c *CandidatureController) ListPublished(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	approved := models.StatusApproved
	published := true
	params := repositories.GetCandidaturesParams{
		Status:    &approved,
		Published: &published,
		Search:    ctx.Query("search"),
		SortBy:    ctx.DefaultQuery("sortBy", repositories.DefaultCandidatureSort),
		SortOrder: ctx.DefaultQuery("sortOrder", "asc"),
		Page:      page,
		Size:      size,
	}

	if catStr := ctx.Query("categoryId"); catStr != "" {
		catID, err := strconv.ParseInt(catStr, 10, 64)
		if err != nil || catID <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("categoryId"),
			})
			return
		}
		params.CategoryID = &catID
	}

	items, pagination, err := c.candidatureService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}, ""))
}

// ListMine godoc
// @Summary List own candidatures
// @Tags candidatures
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CandidatureResponse}
// @Router /candidatures/me [get]
func (c *CandidatureController) ListMine(ctx *gin.Context) {
	candidateID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	candidatures, err := c.candidatureService.ListByCandidate(ctx.Request.Context(), candidateID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidatures, ""))
}

// Delete godoc
// @Summary Delete a candidature
// @Description Owners may delete their own pending candidature; admins may delete any
// @Tags candidatures
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /candidatures/{id} [delete]
func (c *CandidatureController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	isAdmin := currentRole(ctx) == "ADMIN"
	if err := c.candidatureService.Delete(ctx.Request.Context(), userID, isAdmin, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Candidature deleted"))
}

// ListAll godoc
// @Summary List candidatures
// @Description Admin list across every status with filtering and sorting
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Review status" Enums(pending, approved, rejected)
// @Param categoryId query int false "Category ID"
// @Param candidateId query int false "Candidate ID"
// @Param published query bool false "Published flag"
// @Param search query string false "Search in candidate name and email"
// @Param sortBy query string false "Sort key" Enums(submittedAt, status, category, candidate)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/candidatures [get]
func (c *CandidatureController) ListAll(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	params := repositories.GetCandidaturesParams{
		Search:    ctx.Query("search"),
		SortBy:    ctx.DefaultQuery("sortBy", repositories.DefaultCandidatureSort),
		SortOrder: ctx.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Size:      size,
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := models.CandidatureStatus(statusStr)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown status").WithField("status"),
			})
			return
		}
		params.Status = &status
	}

	if catStr := ctx.Query("categoryId"); catStr != "" {
		catID, err := strconv.ParseInt(catStr, 10, 64)
		if err != nil || catID <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid category ID").WithField("categoryId"),
			})
			return
		}
		params.CategoryID = &catID
	}

	if candStr := ctx.Query("candidateId"); candStr != "" {
		candID, err := strconv.ParseInt(candStr, 10, 64)
		if err != nil || candID <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidate ID").WithField("candidateId"),
			})
			return
		}
		params.CandidateID = &candID
	}

	if pubStr := ctx.Query("published"); pubStr != "" {
		pub := pubStr == "true"
		params.Published = &pub
	}

	items, pagination, err := c.candidatureService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}, ""))
}

// Approve godoc
// @Summary Approve a pending candidature
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Success 200 {object} dto.APIResponse{data=dto.CandidatureResponse}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/candidatures/{id}/approve [post]
func (c *CandidatureController) Approve(ctx *gin.Context) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	candidature, err := c.candidatureService.Review(ctx.Request.Context(), reviewerID, id, true, "")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidature, "Candidature approved"))
}

// Reject godoc
// @Summary Reject a pending candidature
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Param request body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.CandidatureResponse}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/candidatures/{id}/reject [post]
func (c *CandidatureController) Reject(ctx *gin.Context) {
	reviewerID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	var req dto.RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rejection reason is required").WithField("reason"),
		})
		return
	}

	candidature, err := c.candidatureService.Review(ctx.Request.Context(), reviewerID, id, false, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidature, "Candidature rejected"))
}

// SetPublished godoc
// @Summary Publish or unpublish an approved candidature
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Param request body dto.PublishRequest true "Publish flag"
// @Success 200 {object} dto.APIResponse{data=dto.CandidatureResponse}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/candidatures/{id}/publish [post]
func (c *CandidatureController) SetPublished(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	var req dto.PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Published flag is required").WithField("published"),
		})
		return
	}

	candidature, err := c.candidatureService.SetPublished(ctx.Request.Context(), id, *req.Published)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(candidature, "Publication updated"))
}

// GetStats godoc
// @Summary Candidature statistics
// @Description Totals by review status, broken down per category
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.CandidatureStatsResponse}
// @Router /admin/candidatures/stats [get]
func (c *CandidatureController) GetStats(ctx *gin.Context) {
	stats, err := c.candidatureService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}
