package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"personalportal/internal/textnote/model"
	"personalportal/pkg/logger"
	"personalportal/store"
)

const noteCols = `id, name, content, created, updated`

type TextNoteRepository struct {
	DB *sql.DB
}

func NewTextNoteRepository(db *sql.DB) *TextNoteRepository {
	return &TextNoteRepository{DB: db}
}

func scanNote(s store.Scanner) (model.TextNote, error) {
	var n model.TextNote
	err := s.Scan(&n.ID, &n.Name, &n.Content, &n.Created, &n.Updated)
	return n, err
}

func (r *TextNoteRepository) GetByID(id uuid.UUID) (*model.TextNote, error) {
	n, err := scanNote(r.DB.QueryRow(`SELECT `+noteCols+` FROM text_notes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("text note %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get text note %s: %v", id, err)
		return nil, err
	}
	return &n, nil
}

func (r *TextNoteRepository) GetAll() ([]model.TextNote, error) {
	return r.list(`SELECT ` + noteCols + ` FROM text_notes ORDER BY updated DESC`)
}

func (r *TextNoteRepository) GetLatest(count int) ([]model.TextNote, error) {
	return r.list(`SELECT `+noteCols+` FROM text_notes ORDER BY updated DESC LIMIT $1`, count)
}

func (r *TextNoteRepository) Search(term string) ([]model.TextNote, error) {
	return r.list(`SELECT `+noteCols+` FROM text_notes WHERE name ILIKE $1 ESCAPE '\' ORDER BY updated DESC`,
		store.ContainsPattern(term))
}

func (r *TextNoteRepository) list(query string, args ...any) ([]model.TextNote, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list text notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	notes := []model.TextNote{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan text note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *TextNoteRepository) Create(n model.TextNote) error {
	_, err := r.DB.Exec(`INSERT INTO text_notes (id, name, content, created, updated) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.Name, n.Content, n.Created, n.Updated)
	if err != nil {
		logger.Sugar.Errorf("Failed to create text note: %v", err)
	}
	return err
}

func (r *TextNoteRepository) Update(n model.TextNote) error {
	result, err := r.DB.Exec(`UPDATE text_notes SET name = $1, content = $2, updated = $3 WHERE id = $4`,
		n.Name, n.Content, n.Updated, n.ID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update text note %s: %v", n.ID, err)
		return err
	}
	return requireRow(result, n.ID)
}

func (r *TextNoteRepository) Delete(id uuid.UUID) error {
	result, err := r.DB.Exec(`DELETE FROM text_notes WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete text note %s: %v", id, err)
		return err
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id uuid.UUID) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("text note %s: %w", id, store.ErrNotFound)
	}
	return nil
}
