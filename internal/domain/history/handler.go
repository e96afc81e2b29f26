package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pawsense/internal/domain/pets"
	"pawsense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/pets/{petID}/scans", listScansHandler(svc, petsSvc))
}

// scanResponse representa un escaneo registrado para la mascota.
type scanResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Kind       Kind      `json:"kind"`
	MediaKind  string    `json:"media_kind"`
	Endpoint   string    `json:"endpoint"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Advice     string    `json:"advice,omitempty"`
	Escalated  bool      `json:"escalated"`
	ScannedAt  time.Time `json:"scanned_at"`
}

// listScansHandler godoc
// @Summary Historial de escaneos de una mascota
// @Description Lista los resultados de emoción y salud atribuidos a la mascota, del más reciente al más antiguo. Solo el dueño puede verlos.
// @Tags history
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param kind query string false "CSV de tipos (emotion,health)"
// @Param from query string false "Fecha/hora mínima (RFC3339)"
// @Param to query string false "Fecha/hora máxima (RFC3339)"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Success 200 {array} scanResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/scans [get]
func listScansHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetOwned(r.Context(), claims.UserID, petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]scanResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toScanResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	filter := ListFilter{Limit: limit}

	// kind=emotion,health
	if v := strings.TrimSpace(r.URL.Query().Get("kind")); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			k, ok := parseKind(p)
			if !ok {
				return ListFilter{}, errors.New("kind must be emotion or health")
			}
			filter.Kinds = append(filter.Kinds, k)
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toScanResponse(e ScanEntry) scanResponse {
	return scanResponse{
		ID:         e.ID,
		PetID:      e.PetID,
		Kind:       e.Kind,
		MediaKind:  e.MediaKind,
		Endpoint:   e.Endpoint,
		Label:      e.Label,
		Confidence: e.Confidence,
		Advice:     e.Advice,
		Escalated:  e.Escalated,
		ScannedAt:  e.ScannedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
