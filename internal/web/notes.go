package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	textnote "personalportal/internal/textnote/model"
)

func (s *Server) noteRoutes(r chi.Router) {
	r.Get("/", s.NoteList)
	r.Get("/new", s.NoteNew)
	r.Post("/new", s.NoteCreate)
	r.Get("/{id}", s.NoteView)
	r.Get("/{id}/edit", s.NoteEdit)
	r.Post("/{id}/edit", s.NoteUpdate)
	r.Post("/{id}/delete", s.NoteDelete)
}

// NoteList lists all notes, or the matches of ?q= when present.
func (s *Server) NoteList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var (
		notes []textnote.TextNote
		err   error
	)
	if q != "" {
		notes, err = s.API.TextNotes.Search(r.Context(), q)
	} else {
		notes, err = s.API.TextNotes.All(r.Context())
	}
	if err != nil {
		s.apiError(w, err, "load notes")
		return
	}
	s.render(w, http.StatusOK, "notes.html", "Notes", map[string]any{"Notes": notes, "Query": q})
}

func (s *Server) NoteView(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Note")
	if !ok {
		return
	}
	note, err := s.API.TextNotes.Get(r.Context(), id)
	if err != nil {
		s.apiError(w, err, "load the note")
		return
	}
	if note == nil {
		s.notFound(w, "Note")
		return
	}
	s.render(w, http.StatusOK, "note.html", note.Name, map[string]any{"Note": note})
}

func (s *Server) NoteNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "note_form.html", "New note", map[string]any{"Note": &textnote.TextNote{}})
}

func noteFromForm(r *http.Request) (textnote.TextNote, string) {
	n := textnote.TextNote{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Content: r.FormValue("content"),
	}
	if n.Name == "" {
		return n, "Name is required."
	}
	return n, ""
}

func (s *Server) NoteCreate(w http.ResponseWriter, r *http.Request) {
	n, problem := noteFromForm(r)
	if problem != "" {
		s.render(w, http.StatusBadRequest, "note_form.html", "New note", map[string]any{"Note": &n, "Error": problem})
		return
	}
	id, err := s.API.TextNotes.Create(r.Context(), n)
	if err != nil {
		s.apiError(w, err, "create the note")
		return
	}
	redirect(w, r, "/notes/"+id.String())
}

func (s *Server) NoteEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Note")
	if !ok {
		return
	}
	note, err := s.API.TextNotes.Get(r.Context(), id)
	if err != nil {
		s.apiError(w, err, "load the note")
		return
	}
	if note == nil {
		s.notFound(w, "Note")
		return
	}
	s.render(w, http.StatusOK, "note_form.html", "Edit "+note.Name, map[string]any{"Note": note})
}

func (s *Server) NoteUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Note")
	if !ok {
		return
	}
	n, problem := noteFromForm(r)
	n.ID = id
	if problem != "" {
		s.render(w, http.StatusBadRequest, "note_form.html", "Edit note", map[string]any{"Note": &n, "Error": problem})
		return
	}
	if err := s.API.TextNotes.Update(r.Context(), id, n); err != nil {
		s.apiError(w, err, "save the note")
		return
	}
	redirect(w, r, "/notes/"+id.String())
}

func (s *Server) NoteDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Note")
	if !ok {
		return
	}
	if err := s.API.TextNotes.Delete(r.Context(), id); err != nil {
		s.apiError(w, err, "delete the note")
		return
	}
	redirect(w, r, "/notes")
}
