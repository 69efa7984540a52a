package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/google/uuid"
)

type friendService struct {
	friendRepo portsrepo.FriendRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

func NewFriendService(friendRepo portsrepo.FriendRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *friendService {
	return &friendService{friendRepo: friendRepo, userRepo: userRepo}
}

// RequestFriend sends a friend request to another user, looked up by username.
func (s *friendService) RequestFriend(ctx context.Context, userID, friendUsername string) (*domain.Friend, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := s.userRepo.FindUserByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "user not found", err)
		}
		return nil, err
	}
	if target.UserID == userID {
		return nil, apperrors.NewAppError(400, "cannot friend yourself", apperrors.ErrValidation)
	}

	existing, err := s.friendRepo.FindConnectionBetween(ctx, userID, target.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == domain.FriendRejected {
			// A rejected connection can be retried; clear it first.
			if err := s.friendRepo.DeleteConnection(ctx, existing.ConnectionID); err != nil {
				return nil, err
			}
		} else {
			return nil, apperrors.NewAppError(409, "connection already exists", apperrors.ErrDuplicate)
		}
	}

	friend := domain.Friend{
		ConnectionID:   uuid.NewString(),
		UserID:         userID,
		FriendID:       target.UserID,
		Status:         domain.FriendPending,
		ConnectionDate: time.Now(),
	}

	if err := s.friendRepo.SaveConnection(ctx, friend); err != nil {
		logger.Error("Failed to save friend request", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Friend request sent", slog.String("connection_id", friend.ConnectionID))
	return &friend, nil
}

// AcceptFriend accepts a pending request addressed to the user.
func (s *friendService) AcceptFriend(ctx context.Context, connectionID, requestingUserID string) (*domain.Friend, error) {
	return s.answerRequest(ctx, connectionID, requestingUserID, domain.FriendAccepted)
}

// RejectFriend rejects a pending request addressed to the user.
func (s *friendService) RejectFriend(ctx context.Context, connectionID, requestingUserID string) (*domain.Friend, error) {
	return s.answerRequest(ctx, connectionID, requestingUserID, domain.FriendRejected)
}

func (s *friendService) answerRequest(ctx context.Context, connectionID, requestingUserID string, status domain.FriendStatus) (*domain.Friend, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	conn, err := s.friendRepo.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	// Only the recipient can answer.
	if conn.FriendID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	if conn.Status != domain.FriendPending {
		return nil, apperrors.NewAppError(400, "request has already been answered", apperrors.ErrValidation)
	}

	if err := s.friendRepo.UpdateConnectionStatus(ctx, connectionID, status); err != nil {
		logger.Error("Failed to update connection status", slog.String("error", err.Error()), slog.String("connection_id", connectionID))
		return nil, err
	}

	conn.Status = status
	logger.Info("Friend request answered", slog.String("connection_id", connectionID), slog.String("status", string(status)))
	return conn, nil
}

func (s *friendService) ListFriends(ctx context.Context, userID string) ([]domain.Friend, error) {
	conns, err := s.friendRepo.FindConnectionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conns == nil {
		return []domain.Friend{}, nil
	}
	return conns, nil
}

// RemoveFriend deletes a connection the user participates in.
func (s *friendService) RemoveFriend(ctx context.Context, connectionID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	conn, err := s.friendRepo.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return err
	}
	if conn.UserID != requestingUserID && conn.FriendID != requestingUserID {
		return apperrors.ErrForbidden
	}

	if err := s.friendRepo.DeleteConnection(ctx, connectionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete connection", slog.String("error", err.Error()), slog.String("connection_id", connectionID))
		}
		return err
	}

	logger.Info("Friend connection removed", slog.String("connection_id", connectionID))
	return nil
}
