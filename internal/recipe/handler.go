package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"personalportal/internal/recipe/model"
	"personalportal/internal/recipe/service"
	"personalportal/pkg/respond"
)

type RecipeHandler struct {
	Service *service.RecipeService
}

func NewRecipeHandler(service *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: service}
}

// Routes mounts the handler under /api/recipes.
func (h *RecipeHandler) Routes(r chi.Router) {
	r.Get("/", h.GetAll)
	r.Post("/", h.Create)
	r.Get("/latest/{count}", h.GetLatest)
	r.Get("/search/{term}", h.Search)
	r.Get("/type/{type}", h.GetByType)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.Service.Repo.GetAll()
	if err != nil {
		respond.Error(w, err, "load recipes")
		return
	}
	respond.JSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	rc, err := h.Service.Repo.GetByID(id)
	if err != nil {
		respond.Error(w, err, "load recipe")
		return
	}
	respond.JSON(w, http.StatusOK, rc)
}

func (h *RecipeHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	count, ok := respond.PathCount(w, r)
	if !ok {
		return
	}
	recipes, err := h.Service.Repo.GetLatest(count)
	if err != nil {
		respond.Error(w, err, "load recipes")
		return
	}
	respond.JSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.Service.Repo.GetByType(respond.PathParam(r, "type"))
	if err != nil {
		respond.Error(w, err, "load recipes")
		return
	}
	respond.JSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.Service.Repo.Search(respond.PathParam(r, "term"))
	if err != nil {
		respond.Error(w, err, "search recipes")
		return
	}
	respond.JSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Recipe
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := h.Service.CreateRecipe(req)
	if err != nil {
		respond.Error(w, err, "create recipe")
		return
	}
	respond.Created(w, "/api/recipes/"+id.String(), id)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	var req model.Recipe
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateRecipe(id, req); err != nil {
		respond.Error(w, err, "update recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Repo.Delete(id); err != nil {
		respond.Error(w, err, "delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
