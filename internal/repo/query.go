// Package repo contains all database access logic for the cadastral query
// service. Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
// Every dynamic value is passed as a bound parameter, never interpolated
// into the query text.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avasiliev/cadastral-service/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QueryRepo defines the persistence operations for query attempts.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type QueryRepo interface {
	// Insert persists a query attempt and returns the stored projection
	// (with DB-generated id and created_at populated). Used on the success
	// path where the response echoes the persisted row.
	Insert(ctx context.Context, q domain.Query) (domain.Query, error)

	// Record persists a query attempt without returning the row. Used on
	// the verifier-unreachable path, where the client gets an error response
	// and only the audit trail needs the row.
	Record(ctx context.Context, q domain.Query) error

	// List returns query attempts matching the filter, ordered by creation
	// time in the filter's direction, windowed by limit/offset.
	List(ctx context.Context, f domain.HistoryFilter) ([]domain.Query, error)
}

// pgQueryRepo is the Postgres implementation of QueryRepo.
type pgQueryRepo struct {
	db db
}

// NewQueryRepo constructs a QueryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewQueryRepo(db db) QueryRepo {
	return &pgQueryRepo{db: db}
}

// Insert persists a query attempt and returns the full stored row.
func (r *pgQueryRepo) Insert(ctx context.Context, q domain.Query) (domain.Query, error) {
	const sql = `
		INSERT INTO queries (cadastral_number, latitude, longitude, result)
		VALUES (@cadastral_number, @latitude, @longitude, @result)
		RETURNING id, cadastral_number, latitude, longitude, result, created_at`

	row := r.db.QueryRow(ctx, sql, insertArgs(q))
	result, err := scanQuery(row)
	if err != nil {
		return domain.Query{}, fmt.Errorf("repo.QueryRepo.Insert: %w", err)
	}
	return result, nil
}

// Record persists a query attempt without echoing the row back.
func (r *pgQueryRepo) Record(ctx context.Context, q domain.Query) error {
	const sql = `
		INSERT INTO queries (cadastral_number, latitude, longitude, result)
		VALUES (@cadastral_number, @latitude, @longitude, @result)`

	if _, err := r.db.Exec(ctx, sql, insertArgs(q)); err != nil {
		return fmt.Errorf("repo.QueryRepo.Record: %w", err)
	}
	return nil
}

// List returns the filtered, ordered, windowed history of query attempts.
// The ORDER BY direction is chosen from a fixed pair of literals — only the
// values (filter, limit, offset) are bound parameters.
func (r *pgQueryRepo) List(ctx context.Context, f domain.HistoryFilter) ([]domain.Query, error) {
	sql := `
		SELECT id, cadastral_number, latitude, longitude, result, created_at
		FROM queries`

	args := pgx.NamedArgs{
		"limit":  f.Limit,
		"offset": f.Offset,
	}
	if f.CadastralNumber != "" {
		sql += `
		WHERE cadastral_number = @cadastral_number`
		args["cadastral_number"] = f.CadastralNumber
	}

	if f.Order == domain.OrderDescending {
		sql += `
		ORDER BY created_at DESC, id DESC`
	} else {
		sql += `
		ORDER BY created_at ASC, id ASC`
	}

	sql += `
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("repo.QueryRepo.List: %w", err)
	}
	defer rows.Close()

	var queries []domain.Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.QueryRepo.List: scan: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QueryRepo.List: rows: %w", err)
	}

	return queries, nil
}

// insertArgs builds the shared bound parameters for Insert and Record.
// A nil Result becomes SQL NULL.
func insertArgs(q domain.Query) pgx.NamedArgs {
	return pgx.NamedArgs{
		"cadastral_number": q.CadastralNumber,
		"latitude":         q.Latitude,
		"longitude":        q.Longitude,
		"result":           q.Result,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanQuery to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanQuery maps a single database row into a domain.Query.
// Result scans directly into *bool, so SQL NULL stays nil.
func scanQuery(s scanner) (domain.Query, error) {
	var q domain.Query
	err := s.Scan(&q.ID, &q.CadastralNumber, &q.Latitude, &q.Longitude, &q.Result, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Query{}, domain.ErrNotFound
		}
		return domain.Query{}, err
	}
	return q, nil
}
