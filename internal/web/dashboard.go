package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	checklist "personalportal/internal/checklist/model"
	picture "personalportal/internal/picture/model"
	recipe "personalportal/internal/recipe/model"
	textnote "personalportal/internal/textnote/model"
)

const dashboardCount = 5

// Dashboard shows the latest records of every content type, fetched in parallel.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		notes      []textnote.TextNote
		checklists []checklist.Checklist
		recipes    []recipe.Recipe
		pictures   []picture.Picture
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		notes, err = s.API.TextNotes.Latest(ctx, dashboardCount)
		return err
	})
	g.Go(func() (err error) {
		checklists, err = s.API.Checklists.Latest(ctx, dashboardCount)
		return err
	})
	g.Go(func() (err error) {
		recipes, err = s.API.Recipes.Latest(ctx, dashboardCount)
		return err
	})
	g.Go(func() (err error) {
		pictures, err = s.API.Pictures.Latest(ctx, dashboardCount)
		return err
	})
	if err := g.Wait(); err != nil {
		s.apiError(w, err, "load the dashboard")
		return
	}

	s.render(w, http.StatusOK, "dashboard.html", "Dashboard", map[string]any{
		"Notes":      notes,
		"Checklists": checklists,
		"Recipes":    recipes,
		"Pictures":   pictures,
	})
}
