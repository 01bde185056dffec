package service

import (
	"time"

	"github.com/google/uuid"

	"personalportal/internal/recipe/model"
	"personalportal/internal/recipe/repository"
)

type RecipeService struct {
	Repo *repository.RecipeRepository
	Now  func() time.Time
}

func NewRecipeService(repo *repository.RecipeRepository) *RecipeService {
	return &RecipeService{Repo: repo, Now: time.Now}
}

// CreateRecipe stores the recipe row only; pictures in the body are ignored.
func (s *RecipeService) CreateRecipe(rc model.Recipe) (uuid.UUID, error) {
	now := s.Now().UTC()
	rc.ID = uuid.New()
	rc.Created = now
	rc.Updated = now
	if err := s.Repo.Create(rc); err != nil {
		return uuid.Nil, err
	}
	return rc.ID, nil
}

func (s *RecipeService) UpdateRecipe(id uuid.UUID, rc model.Recipe) error {
	rc.ID = id
	rc.Updated = s.Now().UTC()
	return s.Repo.Update(rc)
}
