// Package viewstate holds the state a table view renders: the loaded rows,
// the search query, the sort order, and the status of the last operation.
package viewstate

import (
	"context"
	"strings"
	"sync"

	"github.com/hrutik5321/rowdeck/internal/items"
	"github.com/rs/zerolog"
)

// Repository is the persistence the controller drives.
type Repository interface {
	Initialize(ctx context.Context) (bool, error)
	GetAll(ctx context.Context) ([]items.Row, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, id int64) error
}

// State is a point-in-time copy of everything the controller tracks.
type State struct {
	Initialized   bool
	Rows          []items.Row
	Err           error
	Loading       bool
	SearchQuery   string
	SortField     items.SortField
	SortDirection items.SortDirection
}

// Controller owns the view state. Every persistence call goes through repo,
// and rows are replaced wholesale after each mutation.
//
// The mutex only guards field access; operations themselves are not
// serialised, so callers should await one before starting the next.
type Controller struct {
	repo Repository
	log  zerolog.Logger

	mu            sync.RWMutex
	initialized   bool
	rows          []items.Row
	err           error
	loading       bool
	searchQuery   string
	sortField     items.SortField
	sortDirection items.SortDirection
}

func New(repo Repository, log zerolog.Logger) *Controller {
	return &Controller{
		repo:          repo,
		log:           log.With().Str("component", "viewstate").Logger(),
		sortField:     items.SortByID,
		sortDirection: items.Asc,
	}
}

// Initialize prepares storage and, when it reports ready, loads the rows.
func (c *Controller) Initialize(ctx context.Context) error {
	ok, err := c.repo.Initialize(ctx)
	if err != nil {
		return c.fail(&OpError{Op: OpInitialize, Err: err})
	}

	c.mu.Lock()
	c.initialized = ok
	c.mu.Unlock()

	if !ok {
		return c.fail(ErrStorageNotReady)
	}
	return c.LoadItems(ctx)
}

// LoadItems replaces the rows with a fresh read from storage.
func (c *Controller) LoadItems(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	rows, err := c.repo.GetAll(ctx)
	if err != nil {
		return c.fail(&OpError{Op: OpLoad, Err: err})
	}

	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
	return nil
}

// AddItem creates a row and reloads. A blank name does nothing.
func (c *Controller) AddItem(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.repo.Create(ctx, name); err != nil {
		return c.fail(&OpError{Op: OpAdd, Err: err})
	}
	return c.LoadItems(ctx)
}

// DeleteItem removes the row with id and reloads.
func (c *Controller) DeleteItem(ctx context.Context, id int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.repo.Delete(ctx, id); err != nil {
		return c.fail(&OpError{Op: OpDelete, Err: err})
	}
	return c.LoadItems(ctx)
}

// ToggleSort flips the direction when field is already the sort field;
// otherwise it sorts ascending by field.
func (c *Controller) ToggleSort(field items.SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sortField == field {
		c.sortDirection = c.sortDirection.Flip()
		return
	}
	c.sortField = field
	c.sortDirection = items.Asc
}

// SetSort replaces the sort field and direction.
func (c *Controller) SetSort(field items.SortField, dir items.SortDirection) {
	c.mu.Lock()
	c.sortField, c.sortDirection = field, dir
	c.mu.Unlock()
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
}

func (c *Controller) SetSearchQuery(q string) {
	c.mu.Lock()
	c.searchQuery = q
	c.mu.Unlock()
}

// Items is the filtered and sorted view of the rows, computed on each call.
func (c *Controller) Items() []items.Row {
	c.mu.RLock()
	rows, q, field, dir := c.rows, c.searchQuery, c.sortField, c.sortDirection
	c.mu.RUnlock()

	return items.SortRows(items.FilterRows(rows, q), field, dir)
}

func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State{
		Initialized:   c.initialized,
		Rows:          c.rows,
		Err:           c.err,
		Loading:       c.loading,
		SearchQuery:   c.searchQuery,
		SortField:     c.sortField,
		SortDirection: c.sortDirection,
	}
}

func (c *Controller) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Controller) SearchQuery() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchQuery
}

func (c *Controller) Sort() (items.SortField, items.SortDirection) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortField, c.sortDirection
}

// Err is the error of the most recent failed operation, nil once cleared.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// ErrorMessage is Err as display text, empty when there is none.
func (c *Controller) ErrorMessage() string {
	if err := c.Err(); err != nil {
		return err.Error()
	}
	return ""
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Controller) fail(err error) error {
	c.log.Error().Err(err).Msg("operation failed")

	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	return err
}
