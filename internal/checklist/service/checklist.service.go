package service

import (
	"time"

	"github.com/google/uuid"

	"personalportal/internal/checklist/model"
	"personalportal/internal/checklist/pdf"
	"personalportal/internal/checklist/repository"
	"personalportal/pkg/validation"
)

type ChecklistService struct {
	Repo      *repository.ChecklistRepository
	Renderer  *pdf.Renderer
	Validator *validation.Validator
	Now       func() time.Time
}

func NewChecklistService(repo *repository.ChecklistRepository) *ChecklistService {
	return &ChecklistService{
		Repo:      repo,
		Renderer:  pdf.NewRenderer(),
		Validator: validation.New(),
		Now:       time.Now,
	}
}

// CreateChecklist validates c and stores it with its items under a fresh id.
func (s *ChecklistService) CreateChecklist(c model.Checklist) (uuid.UUID, error) {
	if err := s.Validator.Validate(c); err != nil {
		return uuid.Nil, err
	}
	now := s.Now().UTC()
	c.ID = uuid.New()
	c.Created = now
	c.Updated = now
	if err := s.Repo.Create(c); err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

// UpdateChecklist replaces the checklist under id, items included.
func (s *ChecklistService) UpdateChecklist(id uuid.UUID, c model.Checklist) error {
	if err := s.Validator.Validate(c); err != nil {
		return err
	}
	c.ID = id
	c.Updated = s.Now().UTC()
	return s.Repo.Update(c)
}

// RenderPDF loads the checklist with all of its items and renders it.
func (s *ChecklistService) RenderPDF(id uuid.UUID) (*model.Checklist, []byte, error) {
	c, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	return c, s.Renderer.Render(*c), nil
}
