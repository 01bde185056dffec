package web

import (
	"net/http"
	"strings"

	auth "personalportal/internal/auth/model"
)

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if s.Session.IsAuthenticated() {
		redirect(w, r, "/")
		return
	}
	s.render(w, http.StatusOK, "login.html", "Sign in", map[string]any{"Username": ""})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	req := auth.LoginRequest{
		Username:      strings.TrimSpace(r.FormValue("username")),
		Password:      r.FormValue("password"),
		TrustComputer: r.FormValue("trust_computer") != "",
	}
	if req.Username == "" || req.Password == "" {
		s.render(w, http.StatusOK, "login.html", "Sign in", map[string]any{
			"Error":    "Username and password are required.",
			"Username": req.Username,
		})
		return
	}

	resp := s.Session.Login(r.Context(), s.API, req)
	if !resp.Success {
		s.render(w, http.StatusOK, "login.html", "Sign in", map[string]any{
			"Error":    resp.Message,
			"Username": req.Username,
		})
		return
	}
	redirect(w, r, "/")
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Session.Logout()
	redirect(w, r, "/login")
}
