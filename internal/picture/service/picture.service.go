package service

import (
	"time"

	"github.com/google/uuid"

	"personalportal/internal/picture/model"
	"personalportal/internal/picture/repository"
	"personalportal/pkg/validation"
)

type PictureService struct {
	Repo      *repository.PictureRepository
	Validator *validation.Validator
	Now       func() time.Time
}

func NewPictureService(repo *repository.PictureRepository) *PictureService {
	return &PictureService{Repo: repo, Validator: validation.New(), Now: time.Now}
}

func (s *PictureService) CreatePicture(p model.Picture) (uuid.UUID, error) {
	if err := s.Validator.Validate(p); err != nil {
		return uuid.Nil, err
	}
	now := s.Now().UTC()
	p.ID = uuid.New()
	p.Created = now
	p.Updated = now
	if err := s.Repo.Create(p); err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

func (s *PictureService) UpdatePicture(id uuid.UUID, p model.Picture) error {
	if err := s.Validator.Validate(p); err != nil {
		return err
	}
	p.ID = id
	p.Updated = s.Now().UTC()
	return s.Repo.Update(p)
}
