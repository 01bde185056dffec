package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"personalportal/internal/textnote/model"
	"personalportal/internal/textnote/service"
	"personalportal/pkg/respond"
)

type TextNoteHandler struct {
	Service *service.TextNoteService
}

func NewTextNoteHandler(service *service.TextNoteService) *TextNoteHandler {
	return &TextNoteHandler{Service: service}
}

// Routes mounts the handler under /api/textnotes.
func (h *TextNoteHandler) Routes(r chi.Router) {
	r.Get("/", h.GetAll)
	r.Post("/", h.Create)
	r.Get("/latest/{count}", h.GetLatest)
	r.Get("/search/{term}", h.Search)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *TextNoteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.Repo.GetAll()
	if err != nil {
		respond.Error(w, err, "load text notes")
		return
	}
	respond.JSON(w, http.StatusOK, notes)
}

func (h *TextNoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	note, err := h.Service.Repo.GetByID(id)
	if err != nil {
		respond.Error(w, err, "load text note")
		return
	}
	respond.JSON(w, http.StatusOK, note)
}

func (h *TextNoteHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	count, ok := respond.PathCount(w, r)
	if !ok {
		return
	}
	notes, err := h.Service.Repo.GetLatest(count)
	if err != nil {
		respond.Error(w, err, "load text notes")
		return
	}
	respond.JSON(w, http.StatusOK, notes)
}

func (h *TextNoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.Repo.Search(respond.PathParam(r, "term"))
	if err != nil {
		respond.Error(w, err, "search text notes")
		return
	}
	respond.JSON(w, http.StatusOK, notes)
}

func (h *TextNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TextNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := h.Service.CreateNote(req)
	if err != nil {
		respond.Error(w, err, "create text note")
		return
	}
	respond.Created(w, "/api/textnotes/"+id.String(), id)
}

func (h *TextNoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req model.TextNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateNote(id, req); err != nil {
		respond.Error(w, err, "update text note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TextNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Repo.Delete(id); err != nil {
		respond.Error(w, err, "delete text note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
