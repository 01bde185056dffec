package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalportal/internal/textnote/repository"
	"personalportal/internal/textnote/service"
)

var fixedNow = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewTextNoteService(repository.NewTextNoteRepository(db))
	svc.Now = func() time.Time { return fixedNow }

	r := chi.NewRouter()
	r.Route("/api/textnotes", NewTextNoteHandler(svc).Routes)
	return r, mock
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	srv, mock := newServer(t)
	clientID := uuid.New()

	mock.ExpectExec("INSERT INTO text_notes").
		WithArgs(sqlmock.AnyArg(), "Todo", "<p>x</p>", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"id":"` + clientID.String() + `","name":"Todo","content":"<p>x</p>","created":"2001-01-01T00:00:00Z"}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/textnotes/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var id uuid.UUID
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
	assert.NotEqual(t, clientID, id)
	assert.Equal(t, "/api/textnotes/"+id.String(), rec.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDeleteStatusCodes(t *testing.T) {
	srv, mock := newServer(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE text_notes").
		WithArgs("New", "", fixedNow, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE text_notes").
		WithArgs("New", "", fixedNow, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM text_notes").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/textnotes/"+id.String(), strings.NewReader(`{"name":"New"}`)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/textnotes/"+id.String(), strings.NewReader(`{"name":"New"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/textnotes/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBadParameters(t *testing.T) {
	srv, _ := newServer(t)

	for _, path := range []string{"/api/textnotes/not-a-uuid", "/api/textnotes/latest/-1", "/api/textnotes/latest/ten"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestSearchAndLatest(t *testing.T) {
	srv, mock := newServer(t)
	cols := []string{"id", "name", "content", "created", "updated"}

	mock.ExpectQuery("WHERE name ILIKE").
		WithArgs("%gro%").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(uuid.NewString(), "Groceries", "", fixedNow, fixedNow))
	mock.ExpectQuery("LIMIT \\$1").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cols))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/textnotes/search/gro", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Groceries"`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/textnotes/latest/5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}
