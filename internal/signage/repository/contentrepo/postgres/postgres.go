package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/pkg/pgtools"
	repo "github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // driver for migrations
)

// Table describes how one content collection maps onto its table.
// Columns excludes id, created_at and updated_at, which the repository owns.
type Table[T any] struct {
	Name    string
	Columns []string
	OrderBy string
	Values  func(T) []interface{}
	Scan    func(pgx.Row) (T, error)
}

func (t Table[T]) selectColumns() []string {
	cols := make([]string, 0, len(t.Columns)+3) //nolint:gomnd
	cols = append(cols, "id")
	cols = append(cols, t.Columns...)

	return append(cols, "created_at", "updated_at")
}

type ContentPostgresRepo[T any] struct {
	db    *pgxpool.Pool
	table Table[T]
}

// Connect opens the pool shared by every collection and applies migrations.
func Connect(ctx context.Context, cfg config.PostgresDB) (*pgxpool.Pool, error) {
	connString := "postgres://" + cfg.Username + ":" + cfg.Password + "@" +
		cfg.Addr + "/" + cfg.DB + "?" + "sslmode=" + cfg.SSLmode + "&pool_max_conns=" + cfg.MaxConns

	db, err := pgtools.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to db error: %w", err)
	}

	if err := pgtools.ApplyMigration(cfg); err != nil {
		db.Close()

		return nil, fmt.Errorf("apply migration error: %w", err)
	}

	return db, nil
}

func New[T any](db *pgxpool.Pool, table Table[T]) ContentPostgresRepo[T] {
	return ContentPostgresRepo[T]{
		db:    db,
		table: table,
	}
}

func (cr ContentPostgresRepo[T]) List(ctx context.Context, req repo.ListRequest) (records []T, err error) { //nolint:nonamedreturns
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "list")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sb := psql.Select(cr.table.selectColumns()...).
		From(cr.table.Name).
		OrderBy(cr.table.OrderBy)

	if req.OnlyActive {
		sb = sb.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	records = make([]T, 0, 10) //nolint:gomnd

	for rows.Next() {
		rec, err := cr.table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

func (cr ContentPostgresRepo[T]) Get(ctx context.Context, id string) (rec T, err error) { //nolint:nonamedreturns
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return rec, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "get")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select(cr.table.selectColumns()...).
		From(cr.table.Name).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return rec, fmt.Errorf("to sql error: %w", err)
	}

	return cr.scanOne(tx.QueryRow(ctx, query, args...))
}

func (cr ContentPostgresRepo[T]) Create(ctx context.Context, rec T) (created T, err error) { //nolint:nonamedreturns
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return created, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	now := time.Now().UTC()

	cols := append([]string{"id"}, cr.table.Columns...)
	cols = append(cols, "created_at", "updated_at")

	vals := append([]interface{}{uuid.NewString()}, cr.table.Values(rec)...)
	vals = append(vals, now, now)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Insert(cr.table.Name).
		Columns(cols...).
		Values(vals...).
		Suffix(cr.returning()).ToSql()
	if err != nil {
		return created, fmt.Errorf("to sql error: %w", err)
	}

	return cr.scanOne(tx.QueryRow(ctx, query, args...))
}

func (cr ContentPostgresRepo[T]) Update(ctx context.Context, id string, rec T) (updated T, err error) { //nolint:nonamedreturns
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return updated, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update")
	}()

	set := make(map[string]interface{}, len(cr.table.Columns)+1)

	for i, v := range cr.table.Values(rec) {
		set[cr.table.Columns[i]] = v
	}

	set["updated_at"] = time.Now().UTC()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Update(cr.table.Name).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix(cr.returning()).ToSql()
	if err != nil {
		return updated, fmt.Errorf("to sql error: %w", err)
	}

	return cr.scanOne(tx.QueryRow(ctx, query, args...))
}

func (cr ContentPostgresRepo[T]) Delete(ctx context.Context, id string) (deleted T, err error) { //nolint:nonamedreturns
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return deleted, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "delete")
	}()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete(cr.table.Name).
		Where(squirrel.Eq{"id": id}).
		Suffix(cr.returning()).ToSql()
	if err != nil {
		return deleted, fmt.Errorf("to sql error: %w", err)
	}

	return cr.scanOne(tx.QueryRow(ctx, query, args...))
}

func (cr ContentPostgresRepo[T]) Count(ctx context.Context) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("count(*)").From(cr.table.Name).ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	var n int
	if err := cr.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return n, nil
}

func (cr ContentPostgresRepo[T]) Shutdown(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		cr.db.Close()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case <-done:
		return nil
	}
}

func (cr ContentPostgresRepo[T]) returning() string {
	cols := cr.table.selectColumns()

	s := "RETURNING " + cols[0]
	for _, c := range cols[1:] {
		s += ", " + c
	}

	return s
}

func (cr ContentPostgresRepo[T]) scanOne(row pgx.Row) (T, error) {
	rec, err := cr.table.Scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rec, repo.ErrNotFound
		}

		return rec, fmt.Errorf("scan error: %w", err)
	}

	return rec, nil
}
