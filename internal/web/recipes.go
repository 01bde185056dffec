package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	recipe "personalportal/internal/recipe/model"
)

func (s *Server) recipeRoutes(r chi.Router) {
	r.Get("/", s.RecipeList)
	r.Get("/new", s.RecipeNew)
	r.Post("/new", s.RecipeCreate)
	r.Get("/{id}", s.RecipeView)
	r.Get("/{id}/edit", s.RecipeEdit)
	r.Post("/{id}/edit", s.RecipeUpdate)
	r.Post("/{id}/delete", s.RecipeDelete)
}

func (s *Server) RecipeList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	typ := strings.TrimSpace(r.URL.Query().Get("type"))
	var (
		recipes []recipe.Recipe
		err     error
	)
	switch {
	case q != "":
		recipes, err = s.API.Recipes.Search(r.Context(), q)
	case typ != "":
		recipes, err = s.API.Recipes.ByType(r.Context(), typ)
	default:
		recipes, err = s.API.Recipes.All(r.Context())
	}
	if err != nil {
		s.apiError(w, err, "load recipes")
		return
	}
	s.render(w, http.StatusOK, "recipes.html", "Recipes", map[string]any{
		"Recipes": recipes,
		"Query":   q,
		"Type":    typ,
	})
}

func (s *Server) loadRecipe(w http.ResponseWriter, r *http.Request) (*recipe.Recipe, bool) {
	id, ok := s.pathID(w, r, "Recipe")
	if !ok {
		return nil, false
	}
	rc, err := s.API.Recipes.Get(r.Context(), id)
	if err != nil {
		s.apiError(w, err, "load the recipe")
		return nil, false
	}
	if rc == nil {
		s.notFound(w, "Recipe")
		return nil, false
	}
	return rc, true
}

func (s *Server) RecipeView(w http.ResponseWriter, r *http.Request) {
	rc, ok := s.loadRecipe(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "recipe.html", rc.Name, map[string]any{"Recipe": rc})
}

func (s *Server) RecipeNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "recipe_form.html", "New recipe", map[string]any{"Recipe": &recipe.Recipe{}})
}

func recipeFromForm(r *http.Request) (recipe.Recipe, string) {
	rc := recipe.Recipe{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Type:       strings.TrimSpace(r.FormValue("type")),
		RecipeText: r.FormValue("recipe_text"),
	}
	if rc.Name == "" {
		return rc, "Name is required."
	}
	return rc, ""
}

func (s *Server) RecipeCreate(w http.ResponseWriter, r *http.Request) {
	rc, problem := recipeFromForm(r)
	if problem != "" {
		s.render(w, http.StatusBadRequest, "recipe_form.html", "New recipe", map[string]any{"Recipe": &rc, "Error": problem})
		return
	}
	id, err := s.API.Recipes.Create(r.Context(), rc)
	if err != nil {
		s.apiError(w, err, "create the recipe")
		return
	}
	redirect(w, r, "/recipes/"+id.String())
}

func (s *Server) RecipeEdit(w http.ResponseWriter, r *http.Request) {
	rc, ok := s.loadRecipe(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "recipe_form.html", "Edit "+rc.Name, map[string]any{"Recipe": rc})
}

func (s *Server) RecipeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Recipe")
	if !ok {
		return
	}
	rc, problem := recipeFromForm(r)
	rc.ID = id
	if problem != "" {
		s.render(w, http.StatusBadRequest, "recipe_form.html", "Edit recipe", map[string]any{"Recipe": &rc, "Error": problem})
		return
	}
	if err := s.API.Recipes.Update(r.Context(), id, rc); err != nil {
		s.apiError(w, err, "save the recipe")
		return
	}
	redirect(w, r, "/recipes/"+id.String())
}

func (s *Server) RecipeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Recipe")
	if !ok {
		return
	}
	if err := s.API.Recipes.Delete(r.Context(), id); err != nil {
		s.apiError(w, err, "delete the recipe")
		return
	}
	redirect(w, r, "/recipes")
}
