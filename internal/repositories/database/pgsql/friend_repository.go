package pgsql

import (
	"context"
	"errors"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/models"
	"github.com/centsible/centsible_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFriendRepository struct {
	BaseRepository
}

func newPgxFriendRepository(pool *pgxpool.Pool) portsrepo.FriendRepositoryFacade {
	return &PgxFriendRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FriendRepositoryFacade = (*PgxFriendRepository)(nil)

const friendColumns = `connection_id, user_id, friend_id, status, connection_date`

func scanFriend(row pgx.Row) (models.Friend, error) {
	var m models.Friend
	err := row.Scan(
		&m.ConnectionID,
		&m.UserID,
		&m.FriendID,
		&m.Status,
		&m.ConnectionDate,
	)
	return m, err
}

// SaveConnection persists a new connection request.
func (r *PgxFriendRepository) SaveConnection(ctx context.Context, friend domain.Friend) error {
	m := mapping.ToModelFriend(friend)
	query := `
		INSERT INTO friends (connection_id, user_id, friend_id, status, connection_date)
		VALUES ($1,$2,$3,$4,$5);
	`
	_, err := r.Pool.Exec(ctx, query, m.ConnectionID, m.UserID, m.FriendID, m.Status, m.ConnectionDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert connection "+m.ConnectionID, err)
	}
	return nil
}

// FindConnectionByID retrieves a specific connection.
func (r *PgxFriendRepository) FindConnectionByID(ctx context.Context, connectionID string) (*domain.Friend, error) {
	query := `SELECT ` + friendColumns + ` FROM friends WHERE connection_id = $1;`
	m, err := scanFriend(r.Pool.QueryRow(ctx, query, connectionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find connection by ID "+connectionID, err)
	}
	d := mapping.ToDomainFriend(m)
	return &d, nil
}

// FindConnectionBetween retrieves the connection between two users in either
// direction.
func (r *PgxFriendRepository) FindConnectionBetween(ctx context.Context, userID, otherUserID string) (*domain.Friend, error) {
	query := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1);
	`
	m, err := scanFriend(r.Pool.QueryRow(ctx, query, userID, otherUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find connection between users", err)
	}
	d := mapping.ToDomainFriend(m)
	return &d, nil
}

// FindConnectionsByUser retrieves all connections involving a user.
func (r *PgxFriendRepository) FindConnectionsByUser(ctx context.Context, userID string) ([]domain.Friend, error) {
	query := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE user_id = $1 OR friend_id = $1
		ORDER BY connection_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query connections for user "+userID, err)
	}
	defer rows.Close()

	out := []domain.Friend{}
	for rows.Next() {
		m, err := scanFriend(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan connection row", err)
		}
		out = append(out, mapping.ToDomainFriend(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating connection rows", err)
	}
	return out, nil
}

// UpdateConnectionStatus transitions a connection's status.
func (r *PgxFriendRepository) UpdateConnectionStatus(ctx context.Context, connectionID string, status domain.FriendStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE friends SET status = $2 WHERE connection_id = $1;`, connectionID, string(status))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update connection "+connectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteConnection removes a connection.
func (r *PgxFriendRepository) DeleteConnection(ctx context.Context, connectionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM friends WHERE connection_id = $1;`, connectionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete connection "+connectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
