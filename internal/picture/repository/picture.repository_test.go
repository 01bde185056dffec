package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalportal/internal/picture/model"
	"personalportal/store"
)

var pictureColumns = []string{"id", "file_name", "image_data", "caption", "recipe_id", "created", "updated"}

func newMock(t *testing.T) (*PictureRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPictureRepository(db), mock
}

func TestGetByIDWithAndWithoutRecipe(t *testing.T) {
	repo, mock := newMock(t)
	withRecipe, loose, recipe := uuid.New(), uuid.New(), uuid.New()
	ts := time.Date(2024, 4, 4, 4, 4, 0, 0, time.UTC)

	mock.ExpectQuery("FROM pictures WHERE id = \\$1").
		WithArgs(withRecipe).
		WillReturnRows(sqlmock.NewRows(pictureColumns).
			AddRow(withRecipe.String(), "cake.jpg", []byte{0xff, 0xd8}, "Cake", recipe.String(), ts, ts))
	mock.ExpectQuery("FROM pictures WHERE id = \\$1").
		WithArgs(loose).
		WillReturnRows(sqlmock.NewRows(pictureColumns).
			AddRow(loose.String(), "cat.png", []byte{0x89}, "", nil, ts, ts))

	p, err := repo.GetByID(withRecipe)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, p.ImageData)
	require.NotNil(t, p.RecipeID)
	assert.Equal(t, recipe, *p.RecipeID)

	p, err = repo.GetByID(loose)
	require.NoError(t, err)
	assert.Nil(t, p.RecipeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("FROM pictures WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(pictureColumns))

	_, err := repo.GetByID(id)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGetByRecipeIDOrdersByCreated(t *testing.T) {
	repo, mock := newMock(t)
	recipe := uuid.New()

	mock.ExpectQuery("FROM pictures WHERE recipe_id = \\$1 ORDER BY created$").
		WithArgs(recipe).
		WillReturnRows(sqlmock.NewRows(pictureColumns))

	pics, err := repo.GetByRecipeID(recipe)
	require.NoError(t, err)
	assert.NotNil(t, pics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByRecipeIDs(t *testing.T) {
	repo, mock := newMock(t)
	a, b := uuid.New(), uuid.New()
	ts := time.Now().UTC()

	mock.ExpectQuery("FROM pictures WHERE recipe_id = ANY\\(\\$1::uuid\\[\\]\\) ORDER BY created").
		WithArgs(pq.Array([]string{a.String(), b.String()})).
		WillReturnRows(sqlmock.NewRows(pictureColumns).
			AddRow(uuid.NewString(), "1.jpg", []byte{1}, "", a.String(), ts, ts).
			AddRow(uuid.NewString(), "2.jpg", []byte{2}, "", a.String(), ts.Add(time.Minute), ts))

	byRecipe, err := repo.GetByRecipeIDs([]uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, byRecipe[a], 2)
	assert.Equal(t, "1.jpg", byRecipe[a][0].FileName)
	assert.Empty(t, byRecipe[b])
	assert.NoError(t, mock.ExpectationsWereMet())

	empty, err := repo.GetByRecipeIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateUpdateDelete(t *testing.T) {
	repo, mock := newMock(t)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	recipe := uuid.New()
	p := model.Picture{ID: uuid.New(), FileName: "a.jpg", ImageData: []byte("img"), RecipeID: &recipe, Created: ts, Updated: ts}

	mock.ExpectExec("INSERT INTO pictures").
		WithArgs(p.ID, "a.jpg", []byte("img"), "", recipe, ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE pictures SET").
		WithArgs("a.jpg", []byte("img"), "", nil, ts, p.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM pictures WHERE id = \\$1").
		WithArgs(p.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(p))
	p.RecipeID = nil
	assert.True(t, errors.Is(repo.Update(p), store.ErrNotFound))
	assert.NoError(t, repo.Delete(p.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
