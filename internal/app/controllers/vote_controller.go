package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/services"
	"github.com/makona/awards-backend/internal/middleware"
)

// VoteController handles vote casting and vote lookups
type VoteController struct {
	voteService *services.VoteService
}

// NewVoteController creates a new VoteController
func NewVoteController(voteService *services.VoteService) *VoteController {
	return &VoteController{
		voteService: voteService,
	}
}

// Cast godoc
// @Summary Vote for a candidature
// @Description Cast a vote for an approved, published candidature. One vote per voter per candidature.
// @Tags votes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Success 201 {object} dto.APIResponse{data=dto.VoteResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /candidatures/{id}/votes [post]
func (c *VoteController) Cast(ctx *gin.Context) {
	voterID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	candidatureID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	vote, err := c.voteService.Cast(ctx.Request.Context(), voterID, candidatureID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(vote, "Vote recorded"))
}

// HasVoted godoc
// @Summary Check own vote
// @Description Report whether the authenticated voter has already voted for the candidature
// @Tags votes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Candidature ID"
// @Success 200 {object} dto.APIResponse{data=dto.HasVotedResponse}
// @Router /candidatures/{id}/votes/me [get]
func (c *VoteController) HasVoted(ctx *gin.Context) {
	voterID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	candidatureID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidature ID").WithField("id"),
		})
		return
	}

	voted, err := c.voteService.HasVoted(ctx.Request.Context(), candidatureID, voterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.HasVotedResponse{
		CandidatureID: candidatureID,
		HasVoted:      voted,
	}, ""))
}
