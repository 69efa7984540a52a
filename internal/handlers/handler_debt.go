package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// debtHandler handles HTTP requests related to debts between users.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/:id", h.getDebt)
		debts.POST("/:id/settle", h.markDebtPaid)
		debts.DELETE("/:id", h.deleteDebt)
	}
}

// createDebt godoc
// @Summary Record a debt
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record debt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt))
}

// listDebts godoc
// @Summary List debts
// @Tags debts
// @Produce json
// @Success 200 {array} dto.DebtResponse
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	debts, err := h.debtService.ListDebts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list debts")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtListResponse(debts))
}

// getDebt godoc
// @Summary Get a debt
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	debt, err := h.debtService.GetDebtByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve debt")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// markDebtPaid godoc
// @Summary Settle a debt
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id}/settle [post]
func (h *debtHandler) markDebtPaid(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	debt, err := h.debtService.MarkDebtPaid(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to settle debt")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// deleteDebt godoc
// @Summary Delete a debt
// @Tags debts
// @Param id path string true "Debt ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id} [delete]
func (h *debtHandler) deleteDebt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.debtService.DeleteDebt(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete debt")
		return
	}

	c.Status(http.StatusNoContent)
}
