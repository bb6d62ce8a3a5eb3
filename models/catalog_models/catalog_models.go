package catalog_models

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joy095/shareit/logger"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("item not found")
)

// User is the booking subsystem's view of a directory user.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Item is the booking subsystem's view of a catalog item.
type Item struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// PgDirectory answers user and item lookups from PostgreSQL.
type PgDirectory struct {
	db *pgxpool.Pool
}

func NewPgDirectory(db *pgxpool.Pool) *PgDirectory {
	return &PgDirectory{db: db}
}

// FindUser fetches a user by ID.
func (d *PgDirectory) FindUser(ctx context.Context, id int64) (*User, error) {
	rows, err := d.db.Query(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %w", id, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return user, nil
}

// FindItem fetches an item by ID.
func (d *PgDirectory) FindItem(ctx context.Context, id int64) (*Item, error) {
	item := &Item{}
	err := d.db.QueryRow(ctx, `
		SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE id = $1`, id,
	).Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.Available, &item.RequestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item %d: %w", id, err)
	}
	return item, nil
}

// ListItemsByOwner returns a window of the owner's items ordered by ID.
func (d *PgDirectory) ListItemsByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]Item, error) {
	rows, err := d.db.Query(ctx, `
		SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch items for owner %d: %v", ownerID, err)
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Item])
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}
	return items, nil
}
