package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tangled.org/brewguide.app/brewguide/internal/database"
	"tangled.org/brewguide.app/brewguide/internal/models"
)

// NoteStore implements database.NoteStore using SQLite.
type NoteStore struct {
	db *sql.DB
}

// NewNoteStore creates a NoteStore backed by the given database.
// The database must already have the journal schema applied.
func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

// Ensure NoteStore implements the interface at compile time.
var _ database.NoteStore = (*NoteStore)(nil)

// CreateNote inserts a new journal entry.
func (s *NoteStore) CreateNote(ctx context.Context, req *models.CreateNoteRequest) (*models.BrewNote, error) {
	note := &models.BrewNote{
		ID:          uuid.NewString(),
		BeanID:      req.BeanID,
		Source:      req.Source,
		CoffeeGrams: req.CoffeeGrams,
		WaterGrams:  req.WaterGrams,
		Ratio:       req.Ratio,
		MethodName:  req.MethodName,
		Rating:      req.Rating,
		Text:        req.Text,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brew_notes (id, bean_id, source, coffee_grams, water_grams, ratio, method_name, rating, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.BeanID, string(note.Source), note.CoffeeGrams, note.WaterGrams,
		note.Ratio, note.MethodName, note.Rating, note.Text,
		note.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// GetNote retrieves a journal entry by id.
func (s *NoteStore) GetNote(ctx context.Context, id string) (*models.BrewNote, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, bean_id, source, coffee_grams, water_grams, ratio, method_name, rating, text, created_at
		FROM brew_notes WHERE id = ?
	`, id)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// ListNotes returns journal entries matching the filter, newest first.
func (s *NoteStore) ListNotes(ctx context.Context, filter database.NoteFilter) ([]*models.BrewNote, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, bean_id, source, coffee_grams, water_grams, ratio, method_name, rating, text, created_at
		FROM brew_notes WHERE 1=1
	`)
	var args []any

	if filter.BeanID != "" {
		query.WriteString(" AND bean_id = ?")
		args = append(args, filter.BeanID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if !filter.Since.IsZero() {
		query.WriteString(" AND created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	if !filter.Until.IsZero() {
		query.WriteString(" AND created_at < ?")
		args = append(args, filter.Until.UTC().Format(time.RFC3339Nano))
	}

	query.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.BrewNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			continue
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// UpdateNoteText changes the free-text field, the only mutable part of
// a note.
func (s *NoteStore) UpdateNoteText(ctx context.Context, id, text string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE brew_notes SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("update note text: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteNote removes a journal entry.
func (s *NoteStore) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM brew_notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return database.ErrNotFound
	}
	return nil
}

// CountNotes returns the total number of journal entries.
func (s *NoteStore) CountNotes(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brew_notes`).Scan(&count)
	return count, err
}

// CountNotesBySource returns entry counts grouped by source tag.
func (s *NoteStore) CountNotesBySource(ctx context.Context) (map[models.NoteSource]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM brew_notes GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("count notes by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.NoteSource]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			continue
		}
		counts[models.NoteSource(source)] = count
	}
	return counts, rows.Err()
}

// Close closes the underlying database.
func (s *NoteStore) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*models.BrewNote, error) {
	var note models.BrewNote
	var source, createdAt string

	err := row.Scan(&note.ID, &note.BeanID, &source, &note.CoffeeGrams, &note.WaterGrams,
		&note.Ratio, &note.MethodName, &note.Rating, &note.Text, &createdAt)
	if err != nil {
		return nil, err
	}

	note.Source = models.NoteSource(source)
	note.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &note, nil
}
