package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"personalportal/config"
	authHandler "personalportal/internal/auth"
	authRepo "personalportal/internal/auth/repository"
	authService "personalportal/internal/auth/service"
	checklistHandler "personalportal/internal/checklist"
	checklistRepo "personalportal/internal/checklist/repository"
	checklistService "personalportal/internal/checklist/service"
	pictureHandler "personalportal/internal/picture"
	pictureRepo "personalportal/internal/picture/repository"
	pictureService "personalportal/internal/picture/service"
	recipeHandler "personalportal/internal/recipe"
	recipeRepo "personalportal/internal/recipe/repository"
	recipeService "personalportal/internal/recipe/service"
	textNoteHandler "personalportal/internal/textnote"
	textNoteRepo "personalportal/internal/textnote/repository"
	textNoteService "personalportal/internal/textnote/service"
	"personalportal/middleware"
)

// Setup wires every repository, service and handler of the API onto one router.
func Setup(db *sql.DB, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	auth := authService.NewAuthService(authRepo.NewUserRepository(db), cfg.TokenSecret, cfg.VerifyAuthTokens)
	pictures := pictureRepo.NewPictureRepository(db)

	r.Route("/api/auth", authHandler.NewAuthHandler(auth).Routes)

	r.Group(func(r chi.Router) {
		if cfg.VerifyAuthTokens {
			r.Use(middleware.Auth(auth))
		}
		r.Route("/api/textnotes", textNoteHandler.NewTextNoteHandler(
			textNoteService.NewTextNoteService(textNoteRepo.NewTextNoteRepository(db))).Routes)
		r.Route("/api/checklists", checklistHandler.NewChecklistHandler(
			checklistService.NewChecklistService(checklistRepo.NewChecklistRepository(db))).Routes)
		r.Route("/api/recipes", recipeHandler.NewRecipeHandler(
			recipeService.NewRecipeService(recipeRepo.NewRecipeRepository(db, pictures))).Routes)
		r.Route("/api/pictures", pictureHandler.NewPictureHandler(
			pictureService.NewPictureService(pictures)).Routes)
	})

	return r
}
