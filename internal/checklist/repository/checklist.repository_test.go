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

	"personalportal/internal/checklist/model"
	"personalportal/store"
)

var (
	checklistColumns = []string{"id", "name", "type", "created", "updated"}
	itemColumns      = []string{"id", "checklist_id", "item_name", "description", "item_group"}
)

func newMock(t *testing.T) (*ChecklistRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewChecklistRepository(db), mock
}

func TestGetByIDAttachesItems(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()
	ts := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM checklists WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(checklistColumns).AddRow(id.String(), "Camping", "Trip", ts, ts))
	mock.ExpectQuery("FROM checklist_items WHERE checklist_id = ANY\\(\\$1::uuid\\[\\]\\) ORDER BY item_group, item_name").
		WithArgs(pq.Array([]string{id.String()})).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(1, id.String(), "Stove", "", "Gear").
			AddRow(2, id.String(), "Map", "1:50k", nil))

	c, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Camping", c.Name)
	require.Len(t, c.Items, 2)
	require.NotNil(t, c.Items[0].ItemGroup)
	assert.Equal(t, "Gear", *c.Items[0].ItemGroup)
	assert.Nil(t, c.Items[1].ItemGroup)
	assert.Equal(t, "1:50k", c.Items[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery("FROM checklists WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(checklistColumns))

	_, err := repo.GetByID(id)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListsLoadItemsInOneQuery(t *testing.T) {
	repo, mock := newMock(t)
	a, b := uuid.New(), uuid.New()
	ts := time.Now().UTC()

	mock.ExpectQuery("FROM checklists WHERE type = \\$1 ORDER BY updated DESC").
		WithArgs("Trip").
		WillReturnRows(sqlmock.NewRows(checklistColumns).
			AddRow(a.String(), "A", "Trip", ts, ts).
			AddRow(b.String(), "B", "Trip", ts, ts))
	mock.ExpectQuery("FROM checklist_items WHERE checklist_id = ANY").
		WithArgs(pq.Array([]string{a.String(), b.String()})).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(1, b.String(), "only in b", "", nil))

	lists, err := repo.GetByType("Trip")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.NotNil(t, lists[0].Items, "no items encodes as []")
	assert.Empty(t, lists[0].Items)
	require.Len(t, lists[1].Items, 1)
	assert.Equal(t, "only in b", lists[1].Items[0].ItemName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmptyListSkipsItemQuery(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM checklists WHERE name ILIKE \\$1").
		WithArgs(`%50\%%`).
		WillReturnRows(sqlmock.NewRows(checklistColumns))

	lists, err := repo.Search("50%")
	require.NoError(t, err)
	assert.NotNil(t, lists)
	assert.Empty(t, lists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInsertsItemsInTransaction(t *testing.T) {
	repo, mock := newMock(t)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gear := "Gear"
	c := model.Checklist{ID: uuid.New(), Name: "Camping", Type: "Trip", Created: ts, Updated: ts, Items: []model.ChecklistItem{
		{ItemName: "Tent", ItemGroup: &gear},
		{ItemName: "Map"},
	}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO checklists").
		WithArgs(c.ID, "Camping", "Trip", ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO checklist_items").
		WithArgs(c.ID, "Tent", "", "Gear").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO checklist_items").
		WithArgs(c.ID, "Map", "", nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackOnItemFailure(t *testing.T) {
	repo, mock := newMock(t)
	c := model.Checklist{ID: uuid.New(), Name: "X", Items: []model.ChecklistItem{{ItemName: "a"}}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO checklists").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO checklist_items").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	assert.EqualError(t, repo.Create(c), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReplacesItems(t *testing.T) {
	repo, mock := newMock(t)
	ts := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	c := model.Checklist{ID: uuid.New(), Name: "Renamed", Type: "Trip", Updated: ts, Items: []model.ChecklistItem{{ItemName: "Rope"}}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE checklists SET name = \\$1, type = \\$2, updated = \\$3 WHERE id = \\$4").
		WithArgs("Renamed", "Trip", ts, c.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM checklist_items WHERE checklist_id = \\$1").
		WithArgs(c.ID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO checklist_items").
		WithArgs(c.ID, "Rope", "", nil).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingLeavesItemsAlone(t *testing.T) {
	repo, mock := newMock(t)
	c := model.Checklist{ID: uuid.New(), Name: "Ghost", Items: []model.ChecklistItem{{ItemName: "a"}}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE checklists").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.True(t, errors.Is(repo.Update(c), store.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM checklist_items WHERE checklist_id = \\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM checklists WHERE id = \\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM checklist_items").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM checklists").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	require.NoError(t, repo.Delete(id))
	assert.True(t, errors.Is(repo.Delete(id), store.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
