package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing booking data from storage. The
// list methods are the canned temporal queries behind Classify: the store
// applies the same predicate, order and paging in SQL.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// Update persists start, end, item and status of an existing booking.
	// There is no version check: concurrent writers race and the last write
	// wins.
	Update(ctx context.Context, b *Booking) error

	ListByActor(ctx context.Context, actorID int64, role Role, state State, now time.Time, page Page) ([]*Booking, error)
	ListByItemID(ctx context.Context, itemID int64) ([]*Booking, error)

	// ListFinishedApproved returns the booker's approved bookings of the item
	// that have already ended. Used to gate commenting.
	ListFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) ([]*Booking, error)

	// CancelOverdueWaiting flips WAITING bookings whose end has passed to
	// CANCELED and returns the affected bookings.
	CancelOverdueWaiting(ctx context.Context, now time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func selectBookings() squirrel.SelectBuilder {
	return psql().Select(
		"b.id", "b.start_date", "b.end_date", "b.item_id", "b.booker_id", "b.status",
		"i.name", "i.owner_id", "i.available", "u.name",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql().Insert("public.bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
		&b.ItemName, &b.ItemOwnerID, &b.ItemAvailable, &b.BookerName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	query, args, err := psql().Update("public.bookings").
		Set("start_date", b.Start).
		Set("end_date", b.End).
		Set("item_id", b.ItemID).
		Set("status", b.Status).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// stateWhere translates a state bucket into its SQL predicate. Mirrors the
// stateSpecs table in state.go; the two must stay in lockstep.
func stateWhere(query squirrel.SelectBuilder, state State, now time.Time) squirrel.SelectBuilder {
	switch state {
	case StateCurrent:
		return query.
			Where(squirrel.LtOrEq{"b.start_date": now}).
			Where(squirrel.Gt{"b.end_date": now}).
			OrderBy("b.id")
	case StatePast:
		return query.
			Where(squirrel.Lt{"b.end_date": now}).
			Where(squirrel.NotEq{"b.status": StatusRejected}).
			Where(squirrel.NotEq{"b.status": StatusCanceled}).
			OrderBy("b.start_date DESC")
	case StateFuture:
		return query.
			Where(squirrel.Gt{"b.start_date": now}).
			Where(squirrel.NotEq{"b.status": StatusRejected}).
			Where(squirrel.NotEq{"b.status": StatusCanceled}).
			OrderBy("b.start_date DESC")
	case StateWaiting:
		return query.
			Where(squirrel.Eq{"b.status": StatusWaiting}).
			OrderBy("b.start_date DESC")
	case StateRejected:
		return query.
			Where(squirrel.Eq{"b.status": StatusRejected}).
			OrderBy("b.start_date DESC")
	default: // StateAll
		return query.OrderBy("b.start_date DESC")
	}
}

func (r *pgxRepository) ListByActor(ctx context.Context, actorID int64, role Role, state State, now time.Time, page Page) ([]*Booking, error) {
	query := selectBookings()

	if role == AsOwner {
		query = query.Where(squirrel.Eq{"i.owner_id": actorID})
	} else {
		query = query.Where(squirrel.Eq{"b.booker_id": actorID})
	}

	query = stateWhere(query, state, now).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, sql, args...)
}

func (r *pgxRepository) ListByItemID(ctx context.Context, itemID int64) ([]*Booking, error) {
	sql, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		OrderBy("b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, sql, args...)
}

func (r *pgxRepository) ListFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) ([]*Booking, error) {
	sql, args, err := selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Lt{"b.end_date": now}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build finished bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, sql, args...)
}

func (r *pgxRepository) CancelOverdueWaiting(ctx context.Context, now time.Time) ([]*Booking, error) {
	query, args, err := psql().Update("public.bookings").
		Set("status", StatusCanceled).
		Where(squirrel.Eq{"status": StatusWaiting}).
		Where(squirrel.Lt{"end_date": now}).
		Suffix("RETURNING id, start_date, end_date, item_id, booker_id, status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cancel overdue query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cancel overdue bookings failed: %w", err)
	}
	defer rows.Close()

	var canceled []*Booking
	for rows.Next() {
		b := &Booking{}
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status); err != nil {
			return nil, fmt.Errorf("scan canceled booking failed: %w", err)
		}
		canceled = append(canceled, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read canceled bookings failed: %w", err)
	}
	return canceled, nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, sql string, args ...any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
			&b.ItemName, &b.ItemOwnerID, &b.ItemAvailable, &b.BookerName,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
