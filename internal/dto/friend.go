package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// FriendRequestRequest defines the payload for sending a friend request.
type FriendRequestRequest struct {
	Username string `json:"username" binding:"required"`
}

// FriendResponse is the public view of a friend connection.
type FriendResponse struct {
	ConnectionID   string    `json:"connectionID"`
	UserID         string    `json:"userID"`
	FriendID       string    `json:"friendID"`
	Status         string    `json:"status"`
	ConnectionDate time.Time `json:"connectionDate"`
}

// ToFriendResponse converts a domain.Friend to its DTO.
func ToFriendResponse(f *domain.Friend) FriendResponse {
	return FriendResponse{
		ConnectionID:   f.ConnectionID,
		UserID:         f.UserID,
		FriendID:       f.FriendID,
		Status:         string(f.Status),
		ConnectionDate: f.ConnectionDate,
	}
}

// ToFriendListResponse converts a slice of connections.
func ToFriendListResponse(fs []domain.Friend) []FriendResponse {
	out := make([]FriendResponse, len(fs))
	for i := range fs {
		out[i] = ToFriendResponse(&fs[i])
	}
	return out
}
