package booking_models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/utils"
)

// Ensure PgStore implements Store
var _ Store = (*PgStore)(nil)

// PgStore implements Store on PostgreSQL.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

const detailColumns = `
	b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status, b.version, b.created_at, b.updated_at,
	i.id, i.owner_id, i.name, i.description, i.available, i.request_id,
	u.id, u.name, u.email`

const detailFrom = `
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

const bookingColumns = `id, start_date, end_date, item_id, booker_id, status, version, created_at, updated_at`

// Create inserts a new booking.
func (s *PgStore) Create(ctx context.Context, b *Booking) error {
	logger.InfoLogger.Infof("Attempting to create booking for item %d by user %d", b.ItemID, b.BookerID)

	err := s.db.QueryRow(ctx, `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at, updated_at`,
		b.Start.UTC(), b.End.UTC(), b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking for item %d: %v", b.ItemID, err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %d created for item %d", b.ID, b.ItemID)
	return nil
}

// GetDetail fetches a booking with its item and booker.
func (s *PgStore) GetDetail(ctx context.Context, id int64) (*BookingDetail, error) {
	rows, err := s.db.Query(ctx, `SELECT `+detailColumns+detailFrom+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking %d: %w", id, err)
	}

	detail, err := pgx.CollectExactlyOneRow(rows, scanDetail)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.WarnLogger.Warnf("Booking with ID %d not found", id)
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return &detail, nil
}

// UpdateStatus performs the compare-and-swap status transition.
func (s *PgStore) UpdateStatus(ctx context.Context, id, version int64, from, to Status) (*Booking, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		UPDATE bookings
		SET status = $4, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2 AND status = $3
		RETURNING `+bookingColumns,
		id, version, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, scanBooking)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %d changed since read: %w", id, utils.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read updated booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.InfoLogger.Infof("Booking %d status updated %s -> %s", id, from, to)
	return &updated, nil
}

// HasOverlap checks for an intersecting booking of the same item.
func (s *PgStore) HasOverlap(ctx context.Context, itemID, excludeID int64, status Status, start, end time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE item_id = $1 AND id <> $2 AND status = $3
			  AND start_date < $5 AND end_date > $4
		)`,
		itemID, excludeID, status, start.UTC(), end.UTC(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return exists, nil
}

// List runs a subject query.
func (s *PgStore) List(ctx context.Context, q Query) ([]BookingDetail, error) {
	query, args := buildListQuery(q)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for %s %d: %v", q.Role, q.SubjectID, err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	details, err := pgx.CollectRows(rows, scanDetail)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bookings: %w", err)
	}

	logger.InfoLogger.Infof("Fetched %d bookings for %s %d", len(details), q.Role, q.SubjectID)
	return details, nil
}

// ListByItems fetches bookings of several items at once.
func (s *PgStore) ListByItems(ctx context.Context, itemIDs []int64, status Status) ([]Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE item_id = ANY($1) AND status = $2
		ORDER BY start_date ASC, id ASC`,
		itemIDs, status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item bookings: %w", err)
	}

	bookings, err := pgx.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("failed to scan item bookings: %w", err)
	}
	return bookings, nil
}

// buildListQuery renders q as SQL with positional arguments.
func buildListQuery(q Query) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 8)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString(`SELECT ` + detailColumns + detailFrom)
	if q.Role == RoleOwner {
		sb.WriteString(" WHERE i.owner_id = " + arg(q.SubjectID))
	} else {
		sb.WriteString(" WHERE b.booker_id = " + arg(q.SubjectID))
	}

	if q.Status != "" {
		sb.WriteString(" AND b.status = " + arg(q.Status))
	}
	if q.StartBefore != nil {
		sb.WriteString(" AND b.start_date < " + arg(q.StartBefore.UTC()))
	}
	if q.StartAfter != nil {
		sb.WriteString(" AND b.start_date > " + arg(q.StartAfter.UTC()))
	}
	if q.EndBefore != nil {
		sb.WriteString(" AND b.end_date < " + arg(q.EndBefore.UTC()))
	}
	if q.EndAfter != nil {
		sb.WriteString(" AND b.end_date > " + arg(q.EndAfter.UTC()))
	}

	sb.WriteString(" ORDER BY b.start_date DESC, b.id DESC")
	if q.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(q.Limit))
	}
	if q.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(q.Offset))
	}

	return sb.String(), args
}

func scanBooking(row pgx.CollectableRow) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func scanDetail(row pgx.CollectableRow) (BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(
		&d.ID, &d.Start, &d.End, &d.ItemID, &d.BookerID, &d.Status, &d.Version, &d.CreatedAt, &d.UpdatedAt,
		&d.Item.ID, &d.Item.OwnerID, &d.Item.Name, &d.Item.Description, &d.Item.Available, &d.Item.RequestID,
		&d.Booker.ID, &d.Booker.Name, &d.Booker.Email,
	)
	return d, err
}
