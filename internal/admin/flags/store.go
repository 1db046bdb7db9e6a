// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package flags

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/dberr"
)

// Store is the flag persistence contract.
type Store interface {
	// Create persists a new flag.
	Create(ctx context.Context, flag *Flag) error

	// FindByID returns one flag.
	FindByID(ctx context.Context, id string) (*Flag, error)

	// List returns flags newest-first, optionally filtered by status, plus
	// the total matching count for pagination. An empty status set means no
	// filter.
	List(ctx context.Context, statuses []FlagStatus, limit, offset int) ([]Flag, int, error)

	// UpdateStatus closes a flag and records the acting moderator.
	UpdateStatus(ctx context.Context, id string, status FlagStatus, resolvedBy string) error
}

// PostgresStore implements [Store] on pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates the PostgreSQL-backed flag store.
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const flagColumns = `id, person_slug, reason, details, status, reporter_id, resolved_by, created_at, updated_at`

func scanFlag(row pgx.Row) (*Flag, error) {
	flag := &Flag{}
	err := row.Scan(
		&flag.ID,
		&flag.PersonSlug,
		&flag.Reason,
		&flag.Details,
		&flag.Status,
		&flag.ReporterID,
		&flag.ResolvedBy,
		&flag.CreatedAt,
		&flag.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return flag, nil
}

func (store *PostgresStore) Create(ctx context.Context, flag *Flag) error {
	const query = `
		INSERT INTO content_flags (` + flagColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

	_, err := store.pool.Exec(ctx, query,
		flag.ID,
		flag.PersonSlug,
		flag.Reason,
		flag.Details,
		flag.Status,
		flag.ReporterID,
		flag.ResolvedBy,
	)
	if err != nil {
		return dberr.Wrap(err, "create flag")
	}
	return nil
}

func (store *PostgresStore) FindByID(ctx context.Context, id string) (*Flag, error) {
	const query = `SELECT ` + flagColumns + ` FROM content_flags WHERE id = $1`

	flag, err := scanFlag(store.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Flag")
		}
		return nil, fmt.Errorf("flag_store_find_failed: %w", err)
	}
	return flag, nil
}

func (store *PostgresStore) List(ctx context.Context, statuses []FlagStatus, limit, offset int) ([]Flag, int, error) {
	// An empty filter slice matches every status, in one query shape.
	const countQuery = `
		SELECT count(*) FROM content_flags
		WHERE (cardinality($1::text[]) = 0 OR status = ANY($1))`
	const listQuery = `
		SELECT ` + flagColumns + `
		FROM content_flags
		WHERE (cardinality($1::text[]) = 0 OR status = ANY($1))
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	filter := make([]string, 0, len(statuses))
	for _, status := range statuses {
		filter = append(filter, string(status))
	}

	var total int
	if err := store.pool.QueryRow(ctx, countQuery, filter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("flag_store_count_failed: %w", err)
	}

	rows, err := store.pool.Query(ctx, listQuery, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("flag_store_list_failed: %w", err)
	}
	defer rows.Close()

	result := []Flag{}
	for rows.Next() {
		flag, err := scanFlag(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("flag_store_scan_failed: %w", err)
		}
		result = append(result, *flag)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("flag_store_rows_failed: %w", err)
	}

	return result, total, nil
}

func (store *PostgresStore) UpdateStatus(ctx context.Context, id string, status FlagStatus, resolvedBy string) error {
	const query = `
		UPDATE content_flags
		SET status = $2, resolved_by = $3, updated_at = now()
		WHERE id = $1 AND status = 'open'`

	tag, err := store.pool.Exec(ctx, query, id, status, resolvedBy)
	if err != nil {
		return fmt.Errorf("flag_store_update_status_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("Flag is not open")
	}
	return nil
}
