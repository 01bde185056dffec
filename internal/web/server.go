// Package web is the server-rendered browser client. It talks to the REST
// API through apiclient and keeps the signed-in user in one shared session.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"personalportal/internal/web/apiclient"
	"personalportal/internal/web/session"
	"personalportal/middleware"
	"personalportal/pkg/logger"
	"personalportal/socket"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	API     *apiclient.Client
	Session *session.Session
	Hub     *socket.Hub
	// Location is used to print timestamps. Defaults to time.Local.
	Location *time.Location

	pages map[string]*template.Template
}

func NewServer(api *apiclient.Client, sess *session.Session, hub *socket.Hub) (*Server, error) {
	s := &Server{API: api, Session: sess, Hub: hub, Location: time.Local}
	pages, err := s.parsePages()
	if err != nil {
		return nil, err
	}
	s.pages = pages
	return s, nil
}

// parsePages builds one template set per page, each on top of the layout.
func (s *Server) parsePages() (map[string]*template.Template, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).Funcs(s.funcs()).ParseFS(templateFS, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		pages[base] = t
	}
	return pages, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)

	r.Get("/login", s.LoginPage)
	r.Post("/login", s.Login)
	r.Get("/ws", s.Socket)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/logout", s.Logout)
		r.Get("/", s.Dashboard)
		r.Route("/notes", s.noteRoutes)
		r.Route("/checklists", s.checklistRoutes)
		r.Route("/recipes", s.recipeRoutes)
		r.Route("/pictures", s.pictureRoutes)
	})
	return r
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Session.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Socket(w http.ResponseWriter, r *http.Request) {
	socket.ServeWs(s.Hub, w, r)
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, page, title string, data map[string]any) {
	t, ok := s.pages[page]
	if !ok {
		logger.Sugar.Errorf("Unknown page template %s", page)
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Title"] = title
	data["User"] = s.Session.CurrentUser()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Sugar.Errorf("Failed to render %s: %v", page, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// apiError reports a failed API call. The API's own status is kept for
// client errors; anything else is a bad gateway from the browser's view.
func (s *Server) apiError(w http.ResponseWriter, err error, action string) {
	logger.Sugar.Errorf("Web: Failed to %s: %v", action, err)
	status := http.StatusBadGateway
	var se *apiclient.StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
		status = se.Code
	}
	s.render(w, status, "error.html", "Error", map[string]any{
		"Message": "Failed to " + action + ".",
		"Detail":  err.Error(),
	})
}

func (s *Server) notFound(w http.ResponseWriter, what string) {
	s.render(w, http.StatusNotFound, "error.html", "Not found", map[string]any{
		"Message": what + " not found.",
	})
}

// pathID parses {id}; a malformed id is treated like a missing record.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.notFound(w, what)
		return uuid.Nil, false
	}
	return id, true
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
