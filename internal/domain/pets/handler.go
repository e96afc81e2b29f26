package pets

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"pawsense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// maxPetUpload limita el cuerpo multipart del alta (foto + informe).
const maxPetUpload = 20 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
	})
}

// createPetRequest es el cuerpo JSON del alta. En multipart se usan los mismos nombres de campo.
type createPetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species" enums:"dog,cat"`
	Breed   string `json:"breed"`
	Sex     string `json:"sex" enums:"male,female,unknown"`
	Age     string `json:"age"`
	Weight  string `json:"weight"`
	Notes   string `json:"notes"`
}

// petResponse representa una mascota devuelta por la API.
type petResponse struct {
	ID               string    `json:"id"`
	OwnerUserID      string    `json:"owner_user_id"`
	Name             string    `json:"name"`
	Species          Species   `json:"species"`
	Breed            string    `json:"breed"`
	Sex              Sex       `json:"sex"`
	Age              string    `json:"age,omitempty"`
	Weight           string    `json:"weight,omitempty"`
	Notes            string    `json:"notes"`
	ImageURL         string    `json:"image_url,omitempty"`
	MedicalReportURL string    `json:"medical_report_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota del usuario autenticado. Acepta JSON o multipart/form-data; en multipart se pueden adjuntar `image` (foto) y `medical_report` (informe médico), que se suben a los buckets `pet-images` y `medical-report`.
// @Tags pets
// @Accept json,mpfd
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest false "Datos de la mascota (JSON)"
// @Param image formData file false "Foto de la mascota"
// @Param medical_report formData file false "Informe médico"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, err := decodeCreateInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func decodeCreateInput(r *http.Request) (CreateInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return CreateInput{}, errors.New("invalid json")
		}
		return CreateInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Sex:     req.Sex,
			Age:     req.Age,
			Weight:  req.Weight,
			Notes:   req.Notes,
		}, nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxPetUpload)
	if err := r.ParseMultipartForm(maxPetUpload); err != nil {
		return CreateInput{}, errors.New("invalid multipart form")
	}

	in := CreateInput{
		Name:    r.FormValue("name"),
		Species: r.FormValue("species"),
		Breed:   r.FormValue("breed"),
		Sex:     r.FormValue("sex"),
		Age:     r.FormValue("age"),
		Weight:  r.FormValue("weight"),
		Notes:   r.FormValue("notes"),
	}

	var err error
	if in.Image, err = formFile(r, "image"); err != nil {
		return CreateInput{}, err
	}
	if in.MedicalReport, err = formFile(r, "medical_report"); err != nil {
		return CreateInput{}, err
	}
	return in, nil
}

// formFile devuelve nil si el campo no vino.
func formFile(r *http.Request, field string) (*Upload, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("invalid file " + field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("invalid file " + field)
	}
	return &Upload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Lista las mascotas del usuario autenticado. Con `species` filtra por especie (la pestaña del selector).
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param species query string false "dog o cat"
// @Success 200 {array} petResponse
// @Failure 400 {string} string "species must be dog or cat"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Pet
			err   error
		)
		if sp := r.URL.Query().Get("species"); sp != "" {
			if !IsKnownSpecies(sp) {
				http.Error(w, "species must be dog or cat", http.StatusBadRequest)
				return
			}
			items, err = svc.ListBySpecies(r.Context(), claims.UserID, ParseSpecies(sp))
		} else {
			items, err = svc.ListByOwner(r.Context(), claims.UserID)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		OwnerUserID:      p.OwnerUserID,
		Name:             p.Name,
		Species:          p.Species,
		Breed:            p.Breed,
		Sex:              p.Sex,
		Age:              p.Age,
		Weight:           p.Weight,
		Notes:            p.Notes,
		ImageURL:         p.ImageURL,
		MedicalReportURL: p.MedicalReportURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// writeJSON está duplicado en los handlers de cada módulo (pets/scans/history).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
