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

type Repository interface {
	// Create stores b unless a non-cancelled booking of the same boat overlaps
	// it, in which case ErrUnavailable is returned. Check and insert are atomic.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	All(ctx context.Context) ([]*Booking, error)

	// ActiveForBoat returns the boat's bookings that are not cancelled.
	ActiveForBoat(ctx context.Context, boatID int64) ([]*Booking, error)

	// UpdateStatus sets the status to `to` only if it is still `from`.
	// It returns ErrStatusChanged when another writer changed it first.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (*Booking, error)
}

var bookingColumns = []string{
	"b.id", "b.boat_id", "bt.name", "b.user_id", "b.start_date", "b.end_date", "b.status",
	"b.total_price", "b.client_name", "b.client_email", "b.client_phone", "b.comments",
	"b.created_at", "b.updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var userID *string
	dest := []any{
		&b.ID, &b.BoatID, &b.BoatName, &userID, &b.StartDate, &b.EndDate, &b.Status,
		&b.TotalPrice, &b.ClientName, &b.ClientEmail, &b.ClientPhone, &b.Comments,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if userID != nil {
		b.UserID = *userID
	}
	return &b, nil
}

func selectBookings() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(bookingColumns...).
		From("public.bookings b").
		Join("public.boats bt ON b.boat_id = bt.id")
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialise writers per boat until the transaction ends.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", b.BoatID); err != nil {
		return fmt.Errorf("lock boat failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	overlapSQL, overlapArgs, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"boat_id": b.BoatID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.LtOrEq{"start_date": b.EndDate}).
		Where(squirrel.GtOrEq{"end_date": b.StartDate}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+overlapSQL+")", overlapArgs...).Scan(&exists); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrUnavailable
	}

	var userID *string
	if b.UserID != "" {
		userID = &b.UserID
	}
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "boat_id", "user_id", "start_date", "end_date", "status", "total_price",
			"client_name", "client_email", "client_phone", "comments", "created_at", "updated_at").
		Values(b.ID, b.BoatID, userID, b.StartDate, b.EndDate, b.Status, b.TotalPrice,
			b.ClientName, b.ClientEmail, b.ClientPhone, b.Comments, b.CreatedAt, b.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := selectBookings().Column("count(*) OVER() AS total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.BoatID != 0 {
		query = query.Where(squirrel.Eq{"b.boat_id": filter.BoatID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	offset := (filter.Page - 1) * filter.PerPage
	query = query.OrderBy("b.created_at DESC", "b.id").
		Limit(uint64(filter.PerPage)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	bookings := []*Booking{}
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, total, nil
}

func (r *pgxRepository) All(ctx context.Context) ([]*Booking, error) {
	return r.collect(ctx, selectBookings().OrderBy("b.created_at", "b.id"))
}

func (r *pgxRepository) ActiveForBoat(ctx context.Context, boatID int64) ([]*Booking, error) {
	return r.collect(ctx, selectBookings().
		Where(squirrel.Eq{"b.boat_id": boatID}).
		Where(squirrel.NotEq{"b.status": StatusCancelled}).
		OrderBy("b.start_date"))
}

func (r *pgxRepository) collect(ctx context.Context, query squirrel.SelectBuilder) ([]*Booking, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Distinguish a missing booking from a lost race.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStatusChanged
	}
	return r.GetByID(ctx, id)
}
