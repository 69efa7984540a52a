package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// paymentMethodHandler handles HTTP requests related to payment methods.
type paymentMethodHandler struct {
	pmService portssvc.PaymentMethodSvcFacade
}

func newPaymentMethodHandler(pms portssvc.PaymentMethodSvcFacade) *paymentMethodHandler {
	return &paymentMethodHandler{pmService: pms}
}

func registerPaymentMethodRoutes(rg *gin.RouterGroup, pmService portssvc.PaymentMethodSvcFacade) {
	h := newPaymentMethodHandler(pmService)

	pms := rg.Group("/payment-methods")
	{
		pms.POST("", h.createPaymentMethod)
		pms.GET("", h.listPaymentMethods)
		pms.GET("/:id", h.getPaymentMethod)
		pms.PUT("/:id", h.updatePaymentMethod)
		pms.DELETE("/:id", h.deactivatePaymentMethod)
	}
}

// createPaymentMethod godoc
// @Summary Register a payment method
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param paymentMethod body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pm, err := h.pmService.CreatePaymentMethod(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create payment method")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(pm))
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Tags payment-methods
// @Produce json
// @Success 200 {array} dto.PaymentMethodResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pms, err := h.pmService.ListPaymentMethods(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list payment methods")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentMethodListResponse(pms))
}

// getPaymentMethod godoc
// @Summary Get a payment method
// @Tags payment-methods
// @Produce json
// @Param id path string true "Payment method ID"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{id} [get]
func (h *paymentMethodHandler) getPaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pm, err := h.pmService.GetPaymentMethodByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment method")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// updatePaymentMethod godoc
// @Summary Update a payment method
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param id path string true "Payment method ID"
// @Param paymentMethod body dto.UpdatePaymentMethodRequest true "Fields to update"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{id} [put]
func (h *paymentMethodHandler) updatePaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pm, err := h.pmService.UpdatePaymentMethod(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment method")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// deactivatePaymentMethod godoc
// @Summary Deactivate a payment method
// @Tags payment-methods
// @Param id path string true "Payment method ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{id} [delete]
func (h *paymentMethodHandler) deactivatePaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.pmService.DeactivatePaymentMethod(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate payment method")
		return
	}

	c.Status(http.StatusNoContent)
}
