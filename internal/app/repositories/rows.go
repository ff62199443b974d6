package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
	"github.com/yigit/athena/internal/pkg/dberrors"
	"github.com/yigit/athena/internal/pkg/logger"
)

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ensureID gives a zero id a fresh random value
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// queryOne runs a single-row select. A missing row yields (nil, nil).
func queryOne[T any](ctx context.Context, q db.Querier, op string, qb squirrel.SelectBuilder, scan func(scanner) (*T, error)) (*T, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building select SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	item, err := scan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("op", op).Msg("Error executing select query")
		return nil, dberrors.Classify(op, err)
	}
	return item, nil
}

// queryAll runs a multi-row select. An empty result is an empty, non-nil slice.
func queryAll[T any](ctx context.Context, q db.Querier, op string, qb squirrel.SelectBuilder, scan func(scanner) (*T, error)) ([]*T, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building select SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing select query")
		return nil, dberrors.Classify(op, err)
	}
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning row")
			return nil, dberrors.Classify(op, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating rows")
		return nil, dberrors.Classify(op, err)
	}
	return items, nil
}

// exec runs a write statement and classifies its failure
func exec(ctx context.Context, q db.Querier, op string, b squirrel.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return fmt.Errorf("failed to build %s query: %w", op, err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing statement")
		return dberrors.Classify(op, err)
	}
	return nil
}

// institutionColumns selects an optional institution aliased as i
var institutionColumns = []string{"i.id", "i.name", "i.description"}

// nullableInstitution collects the columns of a LEFT JOINed institution
type nullableInstitution struct {
	id          *uuid.UUID
	name        *string
	description *string
}

func (n *nullableInstitution) dest() []any {
	return []any{&n.id, &n.name, &n.description}
}

func (n *nullableInstitution) value() *models.Institution {
	if n.id == nil {
		return nil
	}
	inst := &models.Institution{ID: *n.id}
	if n.name != nil {
		inst.Name = *n.name
	}
	if n.description != nil {
		inst.Description = *n.description
	}
	return inst
}
