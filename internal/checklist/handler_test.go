package handler

import (
	"bytes"
	"encoding/json"
	"errors"
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
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"personalportal/internal/checklist/pdf"
	"personalportal/internal/checklist/pdf/pdftest"
	"personalportal/internal/checklist/repository"
	"personalportal/internal/checklist/service"
	"personalportal/pkg/logger"
)

var fixedNow = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewChecklistService(repository.NewChecklistRepository(db))
	svc.Now = func() time.Time { return fixedNow }
	svc.Renderer = &pdf.Renderer{Now: svc.Now, Location: time.UTC}

	r := chi.NewRouter()
	r.Route("/api/checklists", NewChecklistHandler(svc).Routes)
	return r, mock
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateValidatesItems(t *testing.T) {
	srv, mock := newServer(t)

	rec := serve(srv, http.MethodPost, "/api/checklists/", `{"name":"Camping","items":[{"item_name":"Tent"},{"item_name":""}]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"fields":{"items[1].item_name":"is required"}}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStoresItems(t *testing.T) {
	srv, mock := newServer(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO checklists").
		WithArgs(sqlmock.AnyArg(), "Camping", "Trip", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO checklist_items").
		WithArgs(sqlmock.AnyArg(), "Tent", "", "Gear").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec := serve(srv, http.MethodPost, "/api/checklists/", `{"name":"Camping","type":"Trip","items":[{"item_name":"Tent","item_group":"Gear"}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var id uuid.UUID
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingChecklist(t *testing.T) {
	srv, mock := newServer(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE checklists").
		WithArgs("X", "", fixedNow, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	rec := serve(srv, http.MethodPut, "/api/checklists/"+id.String(), `{"name":"X","items":[]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByType(t *testing.T) {
	srv, mock := newServer(t)
	id := uuid.New()

	mock.ExpectQuery("WHERE type = \\$1").
		WithArgs("Shopping").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created", "updated"}).
			AddRow(id.String(), "Weekly", "Shopping", fixedNow, fixedNow))
	mock.ExpectQuery("FROM checklist_items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "checklist_id", "item_name", "description", "item_group"}).
			AddRow(7, id.String(), "Milk", "", "Fridge"))

	rec := serve(srv, http.MethodGet, "/api/checklists/type/Shopping", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	items := got[0]["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Fridge", items[0].(map[string]any)["item_group"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchDecodesEscapedTerm(t *testing.T) {
	srv, mock := newServer(t)

	mock.ExpectQuery("WHERE name ILIKE \\$1").
		WithArgs("%AC/DC%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created", "updated"}))

	rec := serve(srv, http.MethodGet, "/api/checklists/search/AC%2FDC", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTypeDecodesEscapedType(t *testing.T) {
	srv, mock := newServer(t)

	mock.ExpectQuery("WHERE type = \\$1").
		WithArgs("Camping/Hiking").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created", "updated"}))

	rec := serve(srv, http.MethodGet, "/api/checklists/type/Camping%2FHiking", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPDF(t *testing.T) {
	srv, mock := newServer(t)
	id := uuid.New()

	mock.ExpectQuery("FROM checklists WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created", "updated"}).
			AddRow(id.String(), "Camping", "Trip", fixedNow, fixedNow))
	mock.ExpectQuery("FROM checklist_items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "checklist_id", "item_name", "description", "item_group"}).
			AddRow(1, id.String(), "Tent", "", "Gear"))

	rec := serve(srv, http.MethodGet, "/api/checklists/"+id.String()+"/pdf", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Camping.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	assert.True(t, pdftest.Shows(rec.Body.Bytes(), "Tent"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// brokenConn accepts headers but fails every body write.
type brokenConn struct {
	*httptest.ResponseRecorder
}

func (brokenConn) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestPDFLogsFailedWrite(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	prev := logger.Sugar
	logger.Sugar = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Sugar = prev })

	srv, mock := newServer(t)
	id := uuid.New()
	mock.ExpectQuery("FROM checklists WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created", "updated"}).
			AddRow(id.String(), "Camping", "Trip", fixedNow, fixedNow))
	mock.ExpectQuery("FROM checklist_items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "checklist_id", "item_name", "description", "item_group"}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(brokenConn{rec}, httptest.NewRequest(http.MethodGet, "/api/checklists/"+id.String()+"/pdf", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessageSnippet("Failed to write checklist").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, id.String())
	assert.Contains(t, entries[0].Message, "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPDFNotFound(t *testing.T) {
	srv, mock := newServer(t)
	id := uuid.New()

	mock.ExpectQuery("FROM checklists WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "created", "updated"}))

	rec := serve(srv, http.MethodGet, "/api/checklists/"+id.String()+"/pdf", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Camping.pdf", FileName("Camping"))
	assert.Equal(t, "checklist.pdf", FileName("   "))
	assert.Equal(t, "a_b_c.pdf", FileName(`a"b/c`))
}
