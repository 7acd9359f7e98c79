package pgdb

import (
	"errors"

	"github.com/Maria-Yarosh/shop.project.SF/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// postgresDuplicate сообщает, что вставка нарушила уникальный индекс.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// collectRows читает все строки выборки как catalog.Row.
func collectRows(rows pgx.Rows) ([]catalog.Row, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	result := make([]catalog.Row, 0, len(maps))
	for _, m := range maps {
		result = append(result, catalog.Row(m))
	}

	return result, nil
}

func parseUUIDs(ids []string) ([]uuid.UUID, error) {
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		result = append(result, parsed)
	}

	return result, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
