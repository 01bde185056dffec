package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"personalportal/internal/picture/model"
	"personalportal/pkg/logger"
	"personalportal/store"
)

const pictureCols = `id, file_name, image_data, caption, recipe_id, created, updated`

type PictureRepository struct {
	DB *sql.DB
}

func NewPictureRepository(db *sql.DB) *PictureRepository {
	return &PictureRepository{DB: db}
}

func scanPicture(s store.Scanner) (model.Picture, error) {
	var p model.Picture
	var recipeID uuid.NullUUID
	err := s.Scan(&p.ID, &p.FileName, &p.ImageData, &p.Caption, &recipeID, &p.Created, &p.Updated)
	if recipeID.Valid {
		p.RecipeID = &recipeID.UUID
	}
	return p, err
}

func nullRecipe(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (r *PictureRepository) GetByID(id uuid.UUID) (*model.Picture, error) {
	p, err := scanPicture(r.DB.QueryRow(`SELECT `+pictureCols+` FROM pictures WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("picture %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get picture %s: %v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *PictureRepository) GetAll() ([]model.Picture, error) {
	return r.list(`SELECT ` + pictureCols + ` FROM pictures ORDER BY updated DESC`)
}

func (r *PictureRepository) GetLatest(count int) ([]model.Picture, error) {
	return r.list(`SELECT `+pictureCols+` FROM pictures ORDER BY updated DESC LIMIT $1`, count)
}

// Search matches on the file name, the only name a picture has.
func (r *PictureRepository) Search(term string) ([]model.Picture, error) {
	return r.list(`SELECT `+pictureCols+` FROM pictures WHERE file_name ILIKE $1 ESCAPE '\' ORDER BY updated DESC`,
		store.ContainsPattern(term))
}

// GetByRecipeID returns the pictures of one recipe, oldest first.
func (r *PictureRepository) GetByRecipeID(recipeID uuid.UUID) ([]model.Picture, error) {
	return r.list(`SELECT `+pictureCols+` FROM pictures WHERE recipe_id = $1 ORDER BY created`, recipeID)
}

// GetByRecipeIDs loads the pictures of several recipes in one query, keyed by recipe.
func (r *PictureRepository) GetByRecipeIDs(recipeIDs []uuid.UUID) (map[uuid.UUID][]model.Picture, error) {
	out := make(map[uuid.UUID][]model.Picture, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	ids := make([]string, len(recipeIDs))
	for i, id := range recipeIDs {
		ids[i] = id.String()
	}
	pics, err := r.list(`SELECT `+pictureCols+` FROM pictures WHERE recipe_id = ANY($1::uuid[]) ORDER BY created`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, p := range pics {
		out[*p.RecipeID] = append(out[*p.RecipeID], p)
	}
	return out, nil
}

func (r *PictureRepository) list(query string, args ...any) ([]model.Picture, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list pictures: %v", err)
		return nil, err
	}
	defer rows.Close()

	pics := []model.Picture{}
	for rows.Next() {
		p, err := scanPicture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan picture: %w", err)
		}
		pics = append(pics, p)
	}
	return pics, rows.Err()
}

func (r *PictureRepository) Create(p model.Picture) error {
	_, err := r.DB.Exec(`INSERT INTO pictures (id, file_name, image_data, caption, recipe_id, created, updated) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.FileName, p.ImageData, p.Caption, nullRecipe(p.RecipeID), p.Created, p.Updated)
	if err != nil {
		logger.Sugar.Errorf("Failed to create picture: %v", err)
	}
	return err
}

func (r *PictureRepository) Update(p model.Picture) error {
	result, err := r.DB.Exec(`UPDATE pictures SET file_name = $1, image_data = $2, caption = $3, recipe_id = $4, updated = $5 WHERE id = $6`,
		p.FileName, p.ImageData, p.Caption, nullRecipe(p.RecipeID), p.Updated, p.ID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update picture %s: %v", p.ID, err)
		return err
	}
	return requireRow(result, p.ID)
}

func (r *PictureRepository) Delete(id uuid.UUID) error {
	result, err := r.DB.Exec(`DELETE FROM pictures WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete picture %s: %v", id, err)
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
		return fmt.Errorf("picture %s: %w", id, store.ErrNotFound)
	}
	return nil
}
