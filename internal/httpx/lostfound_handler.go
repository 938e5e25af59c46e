package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arkanhadi/go-campus-services/internal/lostfound"
)

const maxUploadBytes = 16 << 20

// LostRepo is implemented by lostfound.Repo.
type LostRepo interface {
	Create(ctx context.Context, accountID, title, description, location, imageFile string) (lostfound.Posting, error)
	List(ctx context.Context) ([]lostfound.Posting, error)
}

type LostFoundHandler struct {
	Repo   LostRepo
	Images *lostfound.ImageStore
	Auth   func(http.Handler) http.Handler
}

func (h *LostFoundHandler) Register(r *chi.Mux) {
	r.Get("/lost", h.list)
	r.With(h.Auth).Post("/lost", h.create)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.Images.Dir))))
}

func (h *LostFoundHandler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	var imageFile string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageFile, err = h.Images.Save(file, header.Filename)
		if errors.Is(err, lostfound.ErrUnsupportedFile) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	p, err := h.Repo.Create(r.Context(), AccountID(r.Context()),
		title, r.FormValue("description"), r.FormValue("location"), imageFile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": p.ID})
}

type postingResp struct {
	lostfound.Posting
	ImageURL string `json:"image_url,omitempty"`
}

func (h *LostFoundHandler) list(w http.ResponseWriter, r *http.Request) {
	postings, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]postingResp, 0, len(postings))
	for _, p := range postings {
		resp := postingResp{Posting: p}
		if p.ImageFile != "" {
			resp.ImageURL = "/uploads/" + p.ImageFile
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}
