package uploads

import (
	"net/http"

	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/system/objectstore"
	"github.com/carebridge/carebridge/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 10 << 20

// Handler accepts image uploads and returns the durable URL to store
// on issue or donation documents. The content itself is not validated
// here; the object store is the authority on what it accepted.
type Handler struct {
	Store objectstore.Store
	Log   *zap.Logger
}

func NewHandler(store objectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// Upload handles POST / with a multipart "image" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity.CurrentActor(r); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		webjson.BadRequest(w, "missing image field")
		return
	}
	defer file.Close()

	url, err := h.Store.Put(r.Context(), header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		h.Log.Error("upload failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, map[string]string{"url": url})
}

// Routes returns the upload subrouter, mounted under /uploads.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(identity.RequireActor)
	r.Post("/", h.Upload)
	return r
}
