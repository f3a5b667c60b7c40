package database

import (
	"context"
	"errors"
	"time"

	"tangled.org/brewguide.app/brewguide/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for bean and method persistence.
// This abstraction allows swapping the embedded BoltDB backend for
// other storage. All methods accept a context.Context as the first
// parameter to support cancellation, timeouts, and request-scoped
// values.
type Store interface {
	// Bean operations
	CreateBean(ctx context.Context, req *models.CreateBeanRequest) (*models.Bean, error)
	GetBean(ctx context.Context, id string) (*models.Bean, error)
	ListBeans(ctx context.Context) ([]*models.Bean, error)
	UpdateBean(ctx context.Context, id string, req *models.UpdateBeanRequest) (*models.Bean, error)
	// SaveBean persists an already-loaded bean in place. Used by the
	// inventory service for quantity mutations that bypass the full
	// update path.
	SaveBean(ctx context.Context, bean *models.Bean) error
	DeleteBean(ctx context.Context, id string) error

	// Method operations
	CreateMethod(ctx context.Context, method *models.Method) (*models.Method, error)
	GetMethod(ctx context.Context, id string) (*models.Method, error)
	ListMethods(ctx context.Context) ([]*models.Method, error)
	UpdateMethod(ctx context.Context, id string, method *models.Method) (*models.Method, error)
	DeleteMethod(ctx context.Context, id string) error

	// Close the database
	Close() error
}

// NoteFilter narrows ListNotes queries. Zero values mean "no filter".
type NoteFilter struct {
	BeanID string
	Source *models.NoteSource // nil matches any source
	Since  time.Time
	Until  time.Time
	Limit  int
}

// NoteStore defines the interface for brewing journal persistence.
// Notes live in a separate queryable history store.
type NoteStore interface {
	CreateNote(ctx context.Context, req *models.CreateNoteRequest) (*models.BrewNote, error)
	GetNote(ctx context.Context, id string) (*models.BrewNote, error)
	ListNotes(ctx context.Context, filter NoteFilter) ([]*models.BrewNote, error)
	// UpdateNoteText changes the free-text field, the only mutable part
	// of a note.
	UpdateNoteText(ctx context.Context, id, text string) error
	DeleteNote(ctx context.Context, id string) error
	CountNotes(ctx context.Context) (int, error)
	CountNotesBySource(ctx context.Context) (map[models.NoteSource]int, error)

	Close() error
}
