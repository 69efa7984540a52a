package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// friendHandler handles HTTP requests related to friend connections.
type friendHandler struct {
	friendService portssvc.FriendSvcFacade
}

func newFriendHandler(fs portssvc.FriendSvcFacade) *friendHandler {
	return &friendHandler{friendService: fs}
}

func registerFriendRoutes(rg *gin.RouterGroup, friendService portssvc.FriendSvcFacade) {
	h := newFriendHandler(friendService)

	friends := rg.Group("/friends")
	{
		friends.POST("", h.requestFriend)
		friends.GET("", h.listFriends)
		friends.POST("/:id/accept", h.acceptFriend)
		friends.POST("/:id/reject", h.rejectFriend)
		friends.DELETE("/:id", h.removeFriend)
	}
}

// requestFriend godoc
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Param request body dto.FriendRequestRequest true "Target username"
// @Success 201 {object} dto.FriendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends [post]
func (h *friendHandler) requestFriend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	friend, err := h.friendService.RequestFriend(c.Request.Context(), userID, req.Username)
	if err != nil {
		respondServiceError(c, err, "Failed to send friend request")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFriendResponse(friend))
}

// listFriends godoc
// @Summary List friend connections
// @Tags friends
// @Produce json
// @Success 200 {array} dto.FriendResponse
// @Security BearerAuth
// @Router /friends [get]
func (h *friendHandler) listFriends(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list friends")
		return
	}

	c.JSON(http.StatusOK, dto.ToFriendListResponse(friends))
}

// acceptFriend godoc
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Param id path string true "Connection ID"
// @Success 200 {object} dto.FriendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/{id}/accept [post]
func (h *friendHandler) acceptFriend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	friend, err := h.friendService.AcceptFriend(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to accept friend request")
		return
	}

	c.JSON(http.StatusOK, dto.ToFriendResponse(friend))
}

// rejectFriend godoc
// @Summary Reject a friend request
// @Tags friends
// @Produce json
// @Param id path string true "Connection ID"
// @Success 200 {object} dto.FriendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/{id}/reject [post]
func (h *friendHandler) rejectFriend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	friend, err := h.friendService.RejectFriend(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to reject friend request")
		return
	}

	c.JSON(http.StatusOK, dto.ToFriendResponse(friend))
}

// removeFriend godoc
// @Summary Remove a friend connection
// @Tags friends
// @Param id path string true "Connection ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/{id} [delete]
func (h *friendHandler) removeFriend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.RemoveFriend(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to remove friend")
		return
	}

	c.Status(http.StatusNoContent)
}
