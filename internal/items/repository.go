// Package items reads and writes rows of the items table through a
// db.Service.
package items

import (
	"context"
	"strings"

	"github.com/hrutik5321/rowdeck/internal/db"
	"github.com/rs/zerolog"
)

const (
	selectAllSQL = `SELECT id, name, created_at FROM ` + db.Table
	insertSQL    = `INSERT INTO ` + db.Table + ` (name) VALUES (?)`
	deleteSQL    = `DELETE FROM ` + db.Table + ` WHERE id = ?`
)

// Repository translates item operations into SQL. It holds no state of its
// own beyond its collaborators.
type Repository struct {
	svc db.Service
	log zerolog.Logger
}

func NewRepository(svc db.Service, log zerolog.Logger) *Repository {
	return &Repository{
		svc: svc,
		log: log.With().Str("component", "items").Logger(),
	}
}

// Initialize passes the storage result through unchanged.
func (r *Repository) Initialize(ctx context.Context) (bool, error) {
	return r.svc.Initialize(ctx)
}

// GetAll returns every row. When storage yields no result at all the
// returned slice is nil.
func (r *Repository) GetAll(ctx context.Context) ([]Row, error) {
	r.log.Debug().Str("sql", selectAllSQL).Msg("select rows")

	tuples, err := r.svc.ExecuteWithRows(ctx, selectAllSQL)
	if err != nil {
		return nil, err
	}
	if tuples == nil {
		return nil, nil
	}

	rows := make([]Row, 0, len(tuples))
	for _, t := range tuples {
		row, err := decodeRow(t)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Create inserts name as given. Only blank names are rejected; surrounding
// whitespace is kept.
func (r *Repository) Create(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	r.log.Debug().Str("sql", insertSQL).Str("name", name).Msg("insert row")
	return r.svc.Execute(ctx, insertSQL, name)
}

// Delete removes the row with id. A missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.log.Debug().Str("sql", deleteSQL).Int64("id", id).Msg("delete row")
	return r.svc.Execute(ctx, deleteSQL, id)
}

// ExecuteRawQuery runs query on the row-returning path. Failures come back
// as *DatabaseError.
func (r *Repository) ExecuteRawQuery(ctx context.Context, query string) ([][]any, error) {
	r.log.Debug().Str("sql", query).Msg("raw query")

	result, err := r.svc.ExecuteWithRows(ctx, query)
	if err != nil {
		return nil, &DatabaseError{
			Message: "Failed to execute raw query: " + err.Error(),
			Err:     err,
		}
	}
	return result, nil
}

// SortItems is SortRows, kept on the repository for callers that only hold one.
func (r *Repository) SortItems(rows []Row, field SortField, dir SortDirection) []Row {
	return SortRows(rows, field, dir)
}

// IsModificationQuery is the package-level IsModificationQuery.
func (r *Repository) IsModificationQuery(query string) bool {
	return IsModificationQuery(query)
}
