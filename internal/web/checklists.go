package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	checklistHandler "personalportal/internal/checklist"
	checklist "personalportal/internal/checklist/model"
	"personalportal/pkg/logger"
)

func (s *Server) checklistRoutes(r chi.Router) {
	r.Get("/", s.ChecklistList)
	r.Get("/new", s.ChecklistNew)
	r.Post("/new", s.ChecklistCreate)
	r.Get("/{id}", s.ChecklistView)
	r.Get("/{id}/edit", s.ChecklistEdit)
	r.Post("/{id}/edit", s.ChecklistUpdate)
	r.Post("/{id}/delete", s.ChecklistDelete)
	r.Get("/{id}/pdf", s.ChecklistPDF)
}

// ChecklistList filters by ?q= (name search) or ?type=, in that order.
func (s *Server) ChecklistList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	typ := strings.TrimSpace(r.URL.Query().Get("type"))
	var (
		lists []checklist.Checklist
		err   error
	)
	switch {
	case q != "":
		lists, err = s.API.Checklists.Search(r.Context(), q)
	case typ != "":
		lists, err = s.API.Checklists.ByType(r.Context(), typ)
	default:
		lists, err = s.API.Checklists.All(r.Context())
	}
	if err != nil {
		s.apiError(w, err, "load checklists")
		return
	}
	s.render(w, http.StatusOK, "checklists.html", "Checklists", map[string]any{
		"Checklists": lists,
		"Query":      q,
		"Type":       typ,
	})
}

func (s *Server) loadChecklist(w http.ResponseWriter, r *http.Request) (*checklist.Checklist, bool) {
	id, ok := s.pathID(w, r, "Checklist")
	if !ok {
		return nil, false
	}
	c, err := s.API.Checklists.Get(r.Context(), id)
	if err != nil {
		s.apiError(w, err, "load the checklist")
		return nil, false
	}
	if c == nil {
		s.notFound(w, "Checklist")
		return nil, false
	}
	return c, true
}

func (s *Server) ChecklistView(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadChecklist(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "checklist.html", c.Name, map[string]any{"Checklist": c})
}

func (s *Server) ChecklistNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "checklist_form.html", "New checklist", map[string]any{
		"Checklist": &checklist.Checklist{},
		"Items":     "",
	})
}

func checklistFromForm(r *http.Request) (checklist.Checklist, string, string) {
	raw := r.FormValue("items")
	c := checklist.Checklist{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Type:  strings.TrimSpace(r.FormValue("type")),
		Items: ParseItems(raw),
	}
	for _, it := range c.Items {
		if it.ItemName == "" {
			return c, raw, "Every item needs a name before the first \"|\"."
		}
	}
	if c.Name == "" {
		return c, raw, "Name is required."
	}
	return c, raw, ""
}

func (s *Server) ChecklistCreate(w http.ResponseWriter, r *http.Request) {
	c, raw, problem := checklistFromForm(r)
	if problem != "" {
		s.render(w, http.StatusBadRequest, "checklist_form.html", "New checklist", map[string]any{
			"Checklist": &c, "Items": raw, "Error": problem,
		})
		return
	}
	id, err := s.API.Checklists.Create(r.Context(), c)
	if err != nil {
		s.apiError(w, err, "create the checklist")
		return
	}
	redirect(w, r, "/checklists/"+id.String())
}

func (s *Server) ChecklistEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadChecklist(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "checklist_form.html", "Edit "+c.Name, map[string]any{
		"Checklist": c,
		"Items":     FormatItems(c.Items),
	})
}

func (s *Server) ChecklistUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Checklist")
	if !ok {
		return
	}
	c, raw, problem := checklistFromForm(r)
	c.ID = id
	if problem != "" {
		s.render(w, http.StatusBadRequest, "checklist_form.html", "Edit checklist", map[string]any{
			"Checklist": &c, "Items": raw, "Error": problem,
		})
		return
	}
	if err := s.API.Checklists.Update(r.Context(), id, c); err != nil {
		s.apiError(w, err, "save the checklist")
		return
	}
	redirect(w, r, "/checklists/"+id.String())
}

func (s *Server) ChecklistDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Checklist")
	if !ok {
		return
	}
	if err := s.API.Checklists.Delete(r.Context(), id); err != nil {
		s.apiError(w, err, "delete the checklist")
		return
	}
	redirect(w, r, "/checklists")
}

// ChecklistPDF passes the API's rendered document through as a download.
func (s *Server) ChecklistPDF(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadChecklist(w, r)
	if !ok {
		return
	}
	doc, err := s.API.ChecklistPDF(r.Context(), c.ID)
	if err != nil {
		s.apiError(w, err, "export the checklist")
		return
	}
	if doc == nil {
		s.notFound(w, "Checklist")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+checklistHandler.FileName(c.Name)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	if _, err := w.Write(doc); err != nil {
		logger.Sugar.Errorf("Web: Failed to write checklist %s PDF: %v", c.ID, err)
	}
}
