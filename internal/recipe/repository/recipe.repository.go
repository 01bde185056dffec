package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	picture "personalportal/internal/picture/model"
	pictures "personalportal/internal/picture/repository"
	"personalportal/internal/recipe/model"
	"personalportal/pkg/logger"
	"personalportal/store"
)

const recipeCols = `id, name, type, recipe_text, created, updated`

type RecipeRepository struct {
	DB       *sql.DB
	Pictures *pictures.PictureRepository
}

func NewRecipeRepository(db *sql.DB, pics *pictures.PictureRepository) *RecipeRepository {
	return &RecipeRepository{DB: db, Pictures: pics}
}

func scanRecipe(s store.Scanner) (model.Recipe, error) {
	var rc model.Recipe
	err := s.Scan(&rc.ID, &rc.Name, &rc.Type, &rc.RecipeText, &rc.Created, &rc.Updated)
	return rc, err
}

func (r *RecipeRepository) GetByID(id uuid.UUID) (*model.Recipe, error) {
	rc, err := scanRecipe(r.DB.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get recipe %s: %v", id, err)
		return nil, err
	}
	if rc.Pictures, err = r.Pictures.GetByRecipeID(id); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *RecipeRepository) GetAll() ([]model.Recipe, error) {
	return r.list(`SELECT ` + recipeCols + ` FROM recipes ORDER BY updated DESC`)
}

func (r *RecipeRepository) GetLatest(count int) ([]model.Recipe, error) {
	return r.list(`SELECT `+recipeCols+` FROM recipes ORDER BY updated DESC LIMIT $1`, count)
}

func (r *RecipeRepository) GetByType(recipeType string) ([]model.Recipe, error) {
	return r.list(`SELECT `+recipeCols+` FROM recipes WHERE type = $1 ORDER BY updated DESC`, recipeType)
}

func (r *RecipeRepository) Search(term string) ([]model.Recipe, error) {
	return r.list(`SELECT `+recipeCols+` FROM recipes WHERE name ILIKE $1 ESCAPE '\' ORDER BY updated DESC`,
		store.ContainsPattern(term))
}

func (r *RecipeRepository) list(query string, args ...any) ([]model.Recipe, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list recipes: %v", err)
		return nil, err
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	ids := []uuid.UUID{}
	for rows.Next() {
		rc, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, rc)
		ids = append(ids, rc.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	byRecipe, err := r.Pictures.GetByRecipeIDs(ids)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Pictures = byRecipe[recipes[i].ID]
		if recipes[i].Pictures == nil {
			recipes[i].Pictures = []picture.Picture{}
		}
	}
	return recipes, nil
}

func (r *RecipeRepository) Create(rc model.Recipe) error {
	_, err := r.DB.Exec(`INSERT INTO recipes (id, name, type, recipe_text, created, updated) VALUES ($1, $2, $3, $4, $5, $6)`,
		rc.ID, rc.Name, rc.Type, rc.RecipeText, rc.Created, rc.Updated)
	if err != nil {
		logger.Sugar.Errorf("Failed to create recipe: %v", err)
	}
	return err
}

func (r *RecipeRepository) Update(rc model.Recipe) error {
	result, err := r.DB.Exec(`UPDATE recipes SET name = $1, type = $2, recipe_text = $3, updated = $4 WHERE id = $5`,
		rc.Name, rc.Type, rc.RecipeText, rc.Updated, rc.ID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update recipe %s: %v", rc.ID, err)
		return err
	}
	return requireRow(result, rc.ID)
}

// Delete removes the recipe. Its pictures stay and lose their recipe link.
func (r *RecipeRepository) Delete(id uuid.UUID) error {
	result, err := r.DB.Exec(`DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete recipe %s: %v", id, err)
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
		return fmt.Errorf("recipe %s: %w", id, store.ErrNotFound)
	}
	return nil
}
