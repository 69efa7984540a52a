package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// FriendSvcFacade defines operations for managing friend connections.
type FriendSvcFacade interface {
	// RequestFriend sends a friend request to another user.
	RequestFriend(ctx context.Context, userID, friendUsername string) (*domain.Friend, error)

	// AcceptFriend accepts a pending request addressed to the user.
	AcceptFriend(ctx context.Context, connectionID, requestingUserID string) (*domain.Friend, error)

	// RejectFriend rejects a pending request addressed to the user.
	RejectFriend(ctx context.Context, connectionID, requestingUserID string) (*domain.Friend, error)

	// ListFriends retrieves all connections involving the user.
	ListFriends(ctx context.Context, userID string) ([]domain.Friend, error)

	// RemoveFriend deletes a connection the user participates in.
	RemoveFriend(ctx context.Context, connectionID, requestingUserID string) error
}
