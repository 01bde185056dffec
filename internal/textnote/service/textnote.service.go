package service

import (
	"time"

	"github.com/google/uuid"

	"personalportal/internal/textnote/model"
	"personalportal/internal/textnote/repository"
)

type TextNoteService struct {
	Repo *repository.TextNoteRepository
	Now  func() time.Time
}

func NewTextNoteService(repo *repository.TextNoteRepository) *TextNoteService {
	return &TextNoteService{Repo: repo, Now: time.Now}
}

// CreateNote stores n under a fresh id. Any id or timestamps sent by the client are discarded.
func (s *TextNoteService) CreateNote(n model.TextNote) (uuid.UUID, error) {
	now := s.Now().UTC()
	n.ID = uuid.New()
	n.Created = now
	n.Updated = now
	if err := s.Repo.Create(n); err != nil {
		return uuid.Nil, err
	}
	return n.ID, nil
}

// UpdateNote replaces the note stored under id.
func (s *TextNoteService) UpdateNote(id uuid.UUID, n model.TextNote) error {
	n.ID = id
	n.Updated = s.Now().UTC()
	return s.Repo.Update(n)
}
