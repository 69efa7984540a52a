package repositories

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// FriendReader defines read operations for friend connections.
type FriendReader interface {
	// FindConnectionByID retrieves a specific connection.
	FindConnectionByID(ctx context.Context, connectionID string) (*domain.Friend, error)

	// FindConnectionBetween retrieves the connection between two users in
	// either direction, or apperrors.ErrNotFound.
	FindConnectionBetween(ctx context.Context, userID, otherUserID string) (*domain.Friend, error)

	// FindConnectionsByUser retrieves all connections involving a user.
	FindConnectionsByUser(ctx context.Context, userID string) ([]domain.Friend, error)
}

// FriendWriter defines write operations for friend connections.
type FriendWriter interface {
	// SaveConnection persists a new connection request.
	SaveConnection(ctx context.Context, friend domain.Friend) error

	// UpdateConnectionStatus transitions a connection's status.
	UpdateConnectionStatus(ctx context.Context, connectionID string, status domain.FriendStatus) error

	// DeleteConnection removes a connection.
	DeleteConnection(ctx context.Context, connectionID string) error
}

// FriendRepositoryFacade combines all friend repository interfaces.
type FriendRepositoryFacade interface {
	FriendReader
	FriendWriter
}
