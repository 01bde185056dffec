package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"personalportal/internal/checklist/model"
	"personalportal/internal/checklist/service"
	"personalportal/pkg/logger"
	"personalportal/pkg/respond"
)

type ChecklistHandler struct {
	Service *service.ChecklistService
}

func NewChecklistHandler(service *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{Service: service}
}

// Routes mounts the handler under /api/checklists.
func (h *ChecklistHandler) Routes(r chi.Router) {
	r.Get("/", h.GetAll)
	r.Post("/", h.Create)
	r.Get("/latest/{count}", h.GetLatest)
	r.Get("/search/{term}", h.Search)
	r.Get("/type/{type}", h.GetByType)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/pdf", h.PDF)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *ChecklistHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Service.Repo.GetAll()
	if err != nil {
		respond.Error(w, err, "load checklists")
		return
	}
	respond.JSON(w, http.StatusOK, lists)
}

func (h *ChecklistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Service.Repo.GetByID(id)
	if err != nil {
		respond.Error(w, err, "load checklist")
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *ChecklistHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	count, ok := respond.PathCount(w, r)
	if !ok {
		return
	}
	lists, err := h.Service.Repo.GetLatest(count)
	if err != nil {
		respond.Error(w, err, "load checklists")
		return
	}
	respond.JSON(w, http.StatusOK, lists)
}

func (h *ChecklistHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Service.Repo.GetByType(respond.PathParam(r, "type"))
	if err != nil {
		respond.Error(w, err, "load checklists")
		return
	}
	respond.JSON(w, http.StatusOK, lists)
}

func (h *ChecklistHandler) Search(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Service.Repo.Search(respond.PathParam(r, "term"))
	if err != nil {
		respond.Error(w, err, "search checklists")
		return
	}
	respond.JSON(w, http.StatusOK, lists)
}

func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Checklist
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := h.Service.CreateChecklist(req)
	if err != nil {
		respond.Error(w, err, "create checklist")
		return
	}
	respond.Created(w, "/api/checklists/"+id.String(), id)
}

func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req model.Checklist
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateChecklist(id, req); err != nil {
		respond.Error(w, err, "update checklist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Repo.Delete(id); err != nil {
		respond.Error(w, err, "delete checklist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PDF streams the rendered checklist as a download.
func (h *ChecklistHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	c, doc, err := h.Service.RenderPDF(id)
	if err != nil {
		respond.Error(w, err, "render checklist")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+FileName(c.Name)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		logger.Sugar.Errorf("Failed to write checklist %s PDF: %v", id, err)
	}
}

// FileName derives a download name from a checklist name, keeping it safe
// for a Content-Disposition header.
func FileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/' || r < 0x20 || r == 0x7f:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "checklist"
	}
	return clean + ".pdf"
}
