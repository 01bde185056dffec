package web

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	picture "personalportal/internal/picture/model"
)

const maxUpload = 10 << 20

func (s *Server) pictureRoutes(r chi.Router) {
	r.Get("/", s.PictureList)
	r.Get("/upload", s.PictureUploadForm)
	r.Post("/upload", s.PictureUpload)
	r.Get("/{id}", s.PictureView)
	r.Get("/{id}/image", s.PictureImage)
	r.Post("/{id}/delete", s.PictureDelete)
}

func (s *Server) PictureList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var (
		pics []picture.Picture
		err  error
	)
	if q != "" {
		pics, err = s.API.Pictures.Search(r.Context(), q)
	} else {
		pics, err = s.API.Pictures.All(r.Context())
	}
	if err != nil {
		s.apiError(w, err, "load pictures")
		return
	}
	s.render(w, http.StatusOK, "pictures.html", "Pictures", map[string]any{"Pictures": pics, "Query": q})
}

func (s *Server) loadPicture(w http.ResponseWriter, r *http.Request) (*picture.Picture, bool) {
	id, ok := s.pathID(w, r, "Picture")
	if !ok {
		return nil, false
	}
	p, err := s.API.Pictures.Get(r.Context(), id)
	if err != nil {
		s.apiError(w, err, "load the picture")
		return nil, false
	}
	if p == nil {
		s.notFound(w, "Picture")
		return nil, false
	}
	return p, true
}

func (s *Server) PictureView(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPicture(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "picture.html", p.FileName, map[string]any{"Picture": p})
}

// PictureImage serves the stored bytes with a sniffed content type.
func (s *Server) PictureImage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPicture(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(p.ImageData))
	w.Header().Set("Content-Length", strconv.Itoa(len(p.ImageData)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(p.ImageData)
}

// PictureUploadForm accepts ?recipe= to attach the upload to a recipe.
func (s *Server) PictureUploadForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "picture_form.html", "Upload picture", map[string]any{
		"RecipeID": r.URL.Query().Get("recipe"),
	})
}

// formProblem is shown to the user as is.
type formProblem string

func (p formProblem) Error() string { return string(p) }

const (
	errNoFile    formProblem = "Choose an image to upload."
	errBadUpload formProblem = "The upload could not be read."
	errBadRecipe formProblem = "The recipe link is not valid."
)

func pictureFromForm(r *http.Request) (picture.Picture, error) {
	var p picture.Picture
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return p, errBadUpload
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return p, errNoFile
	}
	defer file.Close()

	p.ImageData, err = io.ReadAll(file)
	if err != nil {
		return p, errBadUpload
	}
	if len(p.ImageData) == 0 {
		return p, errNoFile
	}
	p.FileName = header.Filename
	p.Caption = strings.TrimSpace(r.FormValue("caption"))
	if raw := strings.TrimSpace(r.FormValue("recipe_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return p, errBadRecipe
		}
		p.RecipeID = &id
	}
	return p, nil
}

func (s *Server) PictureUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+1<<20)
	p, err := pictureFromForm(r)
	if err != nil {
		s.render(w, http.StatusBadRequest, "picture_form.html", "Upload picture", map[string]any{
			"RecipeID": r.FormValue("recipe_id"),
			"Error":    err.Error(),
		})
		return
	}
	if _, err := s.API.Pictures.Create(r.Context(), p); err != nil {
		s.apiError(w, err, "upload the picture")
		return
	}
	if p.RecipeID != nil {
		redirect(w, r, "/recipes/"+p.RecipeID.String())
		return
	}
	redirect(w, r, "/pictures")
}

func (s *Server) PictureDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Picture")
	if !ok {
		return
	}
	if err := s.API.Pictures.Delete(r.Context(), id); err != nil {
		s.apiError(w, err, "delete the picture")
		return
	}
	redirect(w, r, "/pictures")
}
