package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"staynest/internal/app"
	"staynest/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService

	// Upload targets; files land here and are static-served from the
	// matching URL prefixes.
	ImagesDir     string
	RoomImagesDir string

	UploadLimiter  *rate.Limiter
	MaxUploadBytes int64
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("Hello, World!")) })
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/hotels", h.createHotel)
	s.mux.Get("/hotels", h.listHotels)
	s.mux.Get("/hotels/{identifier}", h.getHotel)
	s.mux.Put("/hotels/{hotelId}", h.updateHotel)
	s.mux.Delete("/hotels/{hotelId}", h.deleteHotel)

	s.mux.Group(func(r chi.Router) {
		if h.UploadLimiter != nil {
			r.Use(RateLimit(h.UploadLimiter))
		}
		r.Post("/images", h.uploadImages)
		r.Post("/images/rooms", h.uploadRoomImage)
	})

	s.mux.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(h.ImagesDir))))
	s.mux.Handle("/roomImages/*", http.StripPrefix("/roomImages/", http.FileServer(http.Dir(h.RoomImagesDir))))
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeViolations(w http.ResponseWriter, errs []app.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

// ---- hotel CRUD ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := app.ValidateCreate(payload); len(errs) > 0 {
		writeViolations(w, errs)
		return
	}

	var hotel domain.Hotel
	if err := json.Unmarshal(body, &hotel); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	created, err := h.C.Create(r.Context(), hotel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Hotel created successfully",
		"hotel":   created,
	})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.Get(r.Context(), chi.URLParam(r, "identifier"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Hotel not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := app.ParseHotelID(chi.URLParam(r, "hotelId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hotel ID. It must be a number.")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := app.ValidateUpdate(payload); len(errs) > 0 {
		writeViolations(w, errs)
		return
	}

	updated, err := h.C.Update(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Hotel not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Hotel updated successfully",
		"hotel":   updated,
	})
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := app.ParseHotelID(chi.URLParam(r, "hotelId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hotel ID. It must be a number.")
		return
	}
	if err := h.C.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Hotel not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hotel deleted successfully"})
}

// ---- image uploads ----

func (h *Handlers) uploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	identifier := r.FormValue("identifier")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "Identifier is required")
		return
	}

	var stored []string
	for _, fh := range r.MultipartForm.File["images"] {
		name, err := saveUpload(fh, h.ImagesDir)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		stored = append(stored, name)
	}

	images, err := h.C.AttachImages(r.Context(), identifier, stored)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingIdentifier):
			writeError(w, http.StatusBadRequest, "Identifier is required")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Hotel not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Image uploaded successfully",
		"images":  images,
	})
}

func (h *Handlers) uploadRoomImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	identifier := r.FormValue("identifier")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "Identifier is required")
		return
	}
	roomSlug := r.FormValue("roomSlug")
	if roomSlug == "" {
		writeError(w, http.StatusBadRequest, "Room slug is required")
		return
	}
	files := r.MultipartForm.File["roomImage"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "Room image file is required")
		return
	}

	name, err := saveUpload(files[0], h.RoomImagesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	url, err := h.C.AttachRoomImage(r.Context(), identifier, roomSlug, name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Hotel not found")
		case errors.Is(err, domain.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "Room not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Room image uploaded successfully",
		"roomImage": url,
	})
}

// saveUpload stores one multipart file under dir with a fresh name, keeping
// only the original extension. Returns the stored file name.
func saveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}
