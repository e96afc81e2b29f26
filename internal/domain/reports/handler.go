package reports

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"pawsense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Post("/", generateReportHandler(svc))
		rr.Get("/latest", latestPayloadHandler(svc))
	})
}

// generateReportHandler godoc
// @Summary Descargar reporte
// @Description Envía el último resultado guardado del usuario al generador de reportes y devuelve el documento como descarga `PawSense_Report.pdf`.
// @Tags reports
// @Produce application/pdf
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {file} file
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "Please analyze image or audio first"
// @Failure 502 {string} string "report generation failed"
// @Router /reports [post]
func generateReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		opened := false
		err := svc.Generate(r.Context(), claims.UserID, func(contentType string) io.Writer {
			opened = true
			if contentType == "" {
				contentType = "application/pdf"
			}
			w.Header().Set("Content-Type", contentType)
			w.Header().Set("Content-Disposition", `attachment; filename="`+Filename+`"`)
			w.WriteHeader(http.StatusOK)
			return w
		})
		if err == nil || opened {
			// si ya empezó la descarga no hay forma de cambiar el status
			return
		}
		if errors.Is(err, ErrNoReportData) {
			http.Error(w, NoDataMessage, http.StatusNotFound)
			return
		}
		http.Error(w, "report generation failed", http.StatusBadGateway)
	}
}

// latestPayloadHandler godoc
// @Summary Último resultado guardado
// @Description Devuelve el JSON que se enviaría al generador de reportes.
// @Tags reports
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Payload
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "Please analyze image or audio first"
// @Router /reports/latest [get]
func latestPayloadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.Load(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNoReportData) {
				http.Error(w, NoDataMessage, http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
