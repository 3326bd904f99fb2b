package boat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for boats.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Boat, int, error)
	All(ctx context.Context) ([]*Boat, error)
	GetByID(ctx context.Context, id int64) (*Boat, error)
	Create(ctx context.Context, b *Boat) error
	Update(ctx context.Context, b *Boat) error
	Delete(ctx context.Context, id int64) error
}

var boatColumns = []string{
	"id", "name", "description", "price", "capacity", "length", "year", "rating",
	"categories", "features", "images", "is_new",
	"engine", "power", "max_speed", "fuel", "created_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanBoat(row pgx.Row, extra ...any) (*Boat, error) {
	var b Boat
	dest := []any{
		&b.ID, &b.Name, &b.Description, &b.Price, &b.Capacity, &b.Length, &b.Year, &b.Rating,
		&b.Categories, &b.Features, &b.Images, &b.IsNew,
		&b.Specifications.Engine, &b.Specifications.Power, &b.Specifications.MaxSpeed, &b.Specifications.Fuel,
		&b.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func orderClause(by SortBy) string {
	switch by {
	case SortPriceAsc:
		return "price ASC, id ASC"
	case SortPriceDesc:
		return "price DESC, id ASC"
	case SortNewest:
		return "id DESC"
	default:
		return "rating DESC, id ASC"
	}
}

func applyFilter(query squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if len(filter.Categories) > 0 {
		query = query.Where("categories && ?", filter.Categories)
	}
	if filter.MinPrice != nil {
		query = query.Where(squirrel.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		query = query.Where(squirrel.LtOrEq{"price": *filter.MaxPrice})
	}
	if filter.MinCapacity != nil {
		query = query.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}
	return query
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Boat, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := applyFilter(psql.Select(append(boatColumns, "count(*) OVER() AS total_count")...).From("public.boats"), filter)

	offset := (filter.Page - 1) * filter.PerPage
	query = query.OrderBy(orderClause(filter.SortBy)).
		Limit(uint64(filter.PerPage)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list boats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list boats failed: %w", err)
	}
	defer rows.Close()

	boats := []*Boat{}
	var total int
	for rows.Next() {
		b, err := scanBoat(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan boat failed: %w", err)
		}
		boats = append(boats, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate boats failed: %w", err)
	}

	// A page past the end returns no rows, so the window count is lost.
	if len(boats) == 0 && offset > 0 {
		countSQL, countArgs, err := applyFilter(psql.Select("count(*)").From("public.boats"), filter).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count boats query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count boats failed: %w", err)
		}
	}

	return boats, total, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *pgxRepository) All(ctx context.Context) ([]*Boat, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(boatColumns...).From("public.boats").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build all boats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("all boats failed: %w", err)
	}
	defer rows.Close()

	var boats []*Boat
	for rows.Next() {
		b, err := scanBoat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan boat failed: %w", err)
		}
		boats = append(boats, b)
	}
	return boats, rows.Err()
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Boat, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(boatColumns...).
		From("public.boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get boat query failed: %w", err)
	}

	b, err := scanBoat(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get boat failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Boat) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.boats").
		Columns("name", "description", "price", "capacity", "length", "year", "rating",
			"categories", "features", "images", "is_new", "engine", "power", "max_speed", "fuel").
		Values(b.Name, b.Description, b.Price, b.Capacity, b.Length, b.Year, b.Rating,
			nonNil(b.Categories), nonNil(b.Features), nonNil(b.Images), b.IsNew,
			b.Specifications.Engine, b.Specifications.Power, b.Specifications.MaxSpeed, b.Specifications.Fuel).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create boat query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create boat failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Boat) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.boats").
		Set("name", b.Name).
		Set("description", b.Description).
		Set("price", b.Price).
		Set("capacity", b.Capacity).
		Set("length", b.Length).
		Set("year", b.Year).
		Set("rating", b.Rating).
		Set("categories", nonNil(b.Categories)).
		Set("features", nonNil(b.Features)).
		Set("images", nonNil(b.Images)).
		Set("is_new", b.IsNew).
		Set("engine", b.Specifications.Engine).
		Set("power", b.Specifications.Power).
		Set("max_speed", b.Specifications.MaxSpeed).
		Set("fuel", b.Specifications.Fuel).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update boat query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update boat failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.boats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete boat query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete boat failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
