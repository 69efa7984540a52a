package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// obligationHandler handles HTTP requests related to recurring obligations.
type obligationHandler struct {
	obService portssvc.ObligationSvcFacade
}

func newObligationHandler(os portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obService: os}
}

// RegisterObligationRoutes registers the obligation endpoints on the given
// authenticated group.
func RegisterObligationRoutes(rg *gin.RouterGroup, obService portssvc.ObligationSvcFacade) {
	h := newObligationHandler(obService)

	obs := rg.Group("/obligations")
	{
		obs.POST("", h.createObligation)
		obs.GET("", h.listObligations)
		obs.GET("/:id", h.getObligation)
		obs.PUT("/:id", h.updateObligation)
		obs.GET("/:id/history", h.getObligationHistory)
		obs.POST("/:id/pause", h.pauseObligation)
		obs.POST("/:id/resume", h.resumeObligation)
		obs.POST("/:id/cancel", h.cancelObligation)
	}
}

// createObligation godoc
// @Summary Declare a recurring obligation
// @Description Creates an active obligation whose schedule starts at the given start date.
// @Tags obligations
// @Accept json
// @Produce json
// @Param obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ob, err := h.obService.CreateObligation(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create obligation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToObligationResponse(ob))
}

// listObligations godoc
// @Summary List obligations
// @Tags obligations
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListObligationsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListObligationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	obs, err := h.obService.ListObligations(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list obligations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListObligationsResponse(obs))
}

// getObligation godoc
// @Summary Get an obligation
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ob, err := h.obService.GetObligationByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// updateObligation godoc
// @Summary Edit an obligation
// @Description Applies user edits. Frequency and start date are immutable. Editing a flagged obligation clears its review mark.
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID"
// @Param obligation body dto.UpdateObligationRequest true "Fields to update"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	ob, err := h.obService.UpdateObligation(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// getObligationHistory godoc
// @Summary Get an obligation's audit trail
// @Description Returns the append-only change history, oldest first.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {array} dto.ObligationChangeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/history [get]
func (h *obligationHandler) getObligationHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	changes, err := h.obService.ListObligationHistory(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve obligation history")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationHistoryResponse(changes))
}

// pauseObligation godoc
// @Summary Pause an obligation
// @Description Suspends scheduling. Occurrences falling due while paused are skipped.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/pause [post]
func (h *obligationHandler) pauseObligation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ob, err := h.obService.PauseObligation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to pause obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// resumeObligation godoc
// @Summary Resume a paused obligation
// @Description Reactivates scheduling with the cursor moved past the paused window.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/resume [post]
func (h *obligationHandler) resumeObligation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ob, err := h.obService.ResumeObligation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to resume obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}

// cancelObligation godoc
// @Summary Cancel an obligation
// @Description Terminal operation. The obligation is kept for history but never scheduled again.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/cancel [post]
func (h *obligationHandler) cancelObligation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ob, err := h.obService.CancelObligation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(ob))
}
