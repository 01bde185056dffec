package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"personalportal/internal/picture/model"
	"personalportal/internal/picture/service"
	"personalportal/pkg/respond"
)

type PictureHandler struct {
	Service *service.PictureService
}

func NewPictureHandler(service *service.PictureService) *PictureHandler {
	return &PictureHandler{Service: service}
}

// Routes mounts the handler under /api/pictures.
func (h *PictureHandler) Routes(r chi.Router) {
	r.Get("/", h.GetAll)
	r.Post("/", h.Create)
	r.Get("/latest/{count}", h.GetLatest)
	r.Get("/search/{term}", h.Search)
	r.Get("/recipe/{recipeId}", h.GetByRecipeID)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *PictureHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	pics, err := h.Service.Repo.GetAll()
	if err != nil {
		respond.Error(w, err, "load pictures")
		return
	}
	respond.JSON(w, http.StatusOK, pics)
}

func (h *PictureHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Service.Repo.GetByID(id)
	if err != nil {
		respond.Error(w, err, "load picture")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

func (h *PictureHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	count, ok := respond.PathCount(w, r)
	if !ok {
		return
	}
	pics, err := h.Service.Repo.GetLatest(count)
	if err != nil {
		respond.Error(w, err, "load pictures")
		return
	}
	respond.JSON(w, http.StatusOK, pics)
}

func (h *PictureHandler) Search(w http.ResponseWriter, r *http.Request) {
	pics, err := h.Service.Repo.Search(respond.PathParam(r, "term"))
	if err != nil {
		respond.Error(w, err, "search pictures")
		return
	}
	respond.JSON(w, http.StatusOK, pics)
}

func (h *PictureHandler) GetByRecipeID(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := respond.PathID(w, r, "recipeId")
	if !ok {
		return
	}
	pics, err := h.Service.Repo.GetByRecipeID(recipeID)
	if err != nil {
		respond.Error(w, err, "load recipe pictures")
		return
	}
	respond.JSON(w, http.StatusOK, pics)
}

func (h *PictureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Picture
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := h.Service.CreatePicture(req)
	if err != nil {
		respond.Error(w, err, "create picture")
		return
	}
	respond.Created(w, "/api/pictures/"+id.String(), id)
}

func (h *PictureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req model.Picture
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdatePicture(id, req); err != nil {
		respond.Error(w, err, "update picture")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PictureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Repo.Delete(id); err != nil {
		respond.Error(w, err, "delete picture")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
