package scans

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/classify"
	"pawsense/internal/domain/identity"
	"pawsense/internal/domain/pets"
	"pawsense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// maxScanUpload deja margen para el resto del multipart.
const maxScanUpload = capture.MaxMediaBytes + 1<<20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(svc))
		sr.Route("/{sessionID}", func(s chi.Router) {
			s.Get("/", getSessionHandler(svc))
			s.Delete("/", endSessionHandler(svc))

			s.Post("/captures", initiateCaptureHandler(svc))

			s.Post("/identity/answer", answerHandler(svc))
			s.Put("/identity/species", speciesTabHandler(svc))
			s.Get("/identity/pets", candidatesHandler(svc))
			s.Put("/identity/choice", chooseHandler(svc))
			s.Post("/identity/confirm", confirmHandler(svc))
			s.Post("/identity/cancel", cancelHandler(svc))
			s.Put("/active-pet", switchPetHandler(svc))

			s.Post("/emotion", emotionScanHandler(svc))
			s.Post("/health", healthScanHandler(svc))

			s.Post("/recording", startRecordingHandler(svc))
			s.Put("/recording", writeRecordingHandler(svc))
			s.Post("/recording/stop", stopRecordingHandler(svc))

			s.Get("/result", resultHandler(svc))
			s.Get("/preview", previewHandler(svc))
		})
	})
	r.Get("/vets/nearby", nearbyVetsHandler())
}

type flowResponse struct {
	State       identity.State `json:"state"`
	PendingKind capture.Kind   `json:"pending_kind,omitempty"`
	SpeciesTab  pets.Species   `json:"species_tab"`
	ChosenPetID string         `json:"chosen_pet_id,omitempty"`
}

type petRef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Species  pets.Species `json:"species"`
	Breed    string       `json:"breed,omitempty"`
	ImageURL string       `json:"image_url,omitempty"`
}

// resultResponse es el contenido del sink para un slot.
type resultResponse struct {
	Slot       Slot     `json:"slot"`
	Label      string   `json:"label"`
	Confidence int      `json:"confidence"`
	Band       string   `json:"band"`
	Advice     string   `json:"advice,omitempty"`
	Actions    []string `json:"important_actions,omitempty"`
	Error      string   `json:"error,omitempty"`
	Escalated  bool     `json:"sos_sent"`
	Endpoint   string   `json:"endpoint,omitempty"`
	PetID      string   `json:"pet_id,omitempty"`
	Analyzing  bool     `json:"analyzing"`
}

type sessionResponse struct {
	ID             string         `json:"id"`
	Flow           flowResponse   `json:"flow"`
	ActivePet      *petRef        `json:"active_pet,omitempty"`
	Species        pets.Species   `json:"species"`
	Awaiting       capture.Kind   `json:"awaiting,omitempty"`
	Recording      bool           `json:"recording"`
	RecordingBytes int            `json:"recording_bytes,omitempty"`
	HasPreview     bool           `json:"has_preview"`
	Emotion        resultResponse `json:"emotion"`
	Health         resultResponse `json:"health"`
}

// createSessionHandler godoc
// @Summary Abrir sesión de escaneo
// @Description Crea una sesión sin mascota activa. La primera captura abre el flujo de identidad.
// @Tags sessions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 201 {object} sessionResponse
// @Failure 401 {string} string "unauthorized"
// @Router /sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sess, err := svc.Create(claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(sess.State()))
	}
}

// getSessionHandler godoc
// @Summary Estado de la sesión
// @Tags sessions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [get]
func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess.State()))
	}
}

// endSessionHandler godoc
// @Summary Cerrar sesión de escaneo
// @Description Libera la vista previa y descarta la grabación en curso.
// @Tags sessions
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func endSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := svc.End(claims.UserID, chi.URLParam(r, "sessionID")); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type captureRequest struct {
	Kind string `json:"kind" enums:"image,audio"`
}

type captureResponse struct {
	Gated     bool            `json:"gated"`
	Awaiting  capture.Kind    `json:"awaiting,omitempty"`
	Recording bool            `json:"recording"`
	Session   sessionResponse `json:"session"`
}

// initiateCaptureHandler godoc
// @Summary Iniciar captura
// @Description Sin mascota activa abre el flujo de identidad (gated=true) y la captura queda pendiente. Con mascota activa, `image` deja el picker abierto y `audio` empieza a grabar.
// @Tags sessions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body captureRequest true "Tipo de captura"
// @Success 200 {object} captureResponse
// @Failure 400 {string} string "kind must be image or audio"
// @Failure 403 {string} string "capture denied"
// @Failure 409 {string} string "capture intent already pending"
// @Router /sessions/{sessionID}/captures [post]
func initiateCaptureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}

		var req captureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		kind, ok := capture.ParseKind(strings.TrimSpace(req.Kind))
		if !ok {
			http.Error(w, "kind must be image or audio", http.StatusBadRequest)
			return
		}

		res, err := svc.InitiateCapture(r.Context(), sess, kind)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, captureResponse{
			Gated:     res.Gated,
			Awaiting:  res.Awaiting,
			Recording: res.Recording,
			Session:   toSessionResponse(sess.State()),
		})
	}
}

type answerRequest struct {
	Registered bool `json:"registered"`
}

// answerHandler godoc
// @Summary Responder "¿la mascota ya está registrada?"
// @Description No: el flujo pasa a create_pet_prompt y la captura pendiente se descarta. Sí: pasa a select_existing con la pestaña dog.
// @Tags identity
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body answerRequest true "Respuesta"
// @Success 200 {object} flowResponse
// @Failure 409 {string} string "identity step not active"
// @Router /sessions/{sessionID}/identity/answer [post]
func answerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		snap, err := svc.Answer(sess, req.Registered)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFlowResponse(snap))
	}
}

type speciesRequest struct {
	Species string `json:"species" enums:"dog,cat"`
}

// speciesTabHandler godoc
// @Summary Cambiar pestaña de especie
// @Tags identity
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body speciesRequest true "Especie"
// @Success 200 {object} flowResponse
// @Failure 409 {string} string "identity step not active"
// @Router /sessions/{sessionID}/identity/species [put]
func speciesTabHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		var req speciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if !pets.IsKnownSpecies(req.Species) {
			http.Error(w, "species must be dog or cat", http.StatusBadRequest)
			return
		}
		snap, err := svc.SetSpeciesTab(sess, pets.ParseSpecies(req.Species))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFlowResponse(snap))
	}
}

// candidatesHandler godoc
// @Summary Mascotas de la pestaña actual
// @Tags identity
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {array} petRef
// @Failure 409 {string} string "identity step not active"
// @Router /sessions/{sessionID}/identity/pets [get]
func candidatesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		list, err := svc.Candidates(r.Context(), sess)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]petRef, 0, len(list))
		for _, p := range list {
			out = append(out, toPetRef(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type choiceRequest struct {
	PetID string `json:"pet_id"`
}

type choiceResponse struct {
	Selected bool         `json:"selected"`
	Flow     flowResponse `json:"flow"`
}

// chooseHandler godoc
// @Summary Elegir mascota
// @Description Un id que no está en la pestaña actual deja el flujo sin selección.
// @Tags identity
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body choiceRequest true "Mascota"
// @Success 200 {object} choiceResponse
// @Failure 409 {string} string "identity step not active"
// @Router /sessions/{sessionID}/identity/choice [put]
func chooseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		var req choiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		selected, err := svc.Choose(r.Context(), sess, strings.TrimSpace(req.PetID))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, choiceResponse{Selected: selected, Flow: toFlowResponse(sess.flow.Snapshot())})
	}
}

// switchPetHandler godoc
// @Summary Cambiar mascota activa
// @Description Cambia la mascota a la que se atribuyen los próximos escaneos. No se permite con una captura pendiente de identidad.
// @Tags identity
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body choiceRequest true "Mascota"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "capture intent pending"
// @Router /sessions/{sessionID}/active-pet [put]
func switchPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		var req choiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if _, err := svc.SwitchActivePet(r.Context(), sess, strings.TrimSpace(req.PetID)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess.State()))
	}
}

type confirmResponse struct {
	Confirmed bool            `json:"confirmed"`
	Resumed   capture.Kind    `json:"resumed,omitempty"`
	Session   sessionResponse `json:"session"`
}

// confirmHandler godoc
// @Summary Confirmar mascota
// @Description Sin selección no cambia nada (confirmed=false). Con selección fija la mascota activa y reanuda la captura pendiente.
// @Tags identity
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} confirmResponse
// @Failure 403 {string} string "capture denied (la mascota queda seleccionada)"
// @Failure 409 {string} string "identity step not active"
// @Router /sessions/{sessionID}/identity/confirm [post]
func confirmHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		c, err := svc.Confirm(r.Context(), sess)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, confirmResponse{
			Confirmed: c.Confirmed,
			Resumed:   c.Resumed,
			Session:   toSessionResponse(sess.State()),
		})
	}
}

// cancelHandler godoc
// @Summary Cancelar flujo de identidad
// @Tags identity
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} flowResponse
// @Router /sessions/{sessionID}/identity/cancel [post]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toFlowResponse(svc.Cancel(sess)))
	}
}

// emotionScanHandler godoc
// @Summary Escaneo de emoción
// @Description Sube una imagen (`image`) o un audio (`audio`). El endpoint se resuelve con la especie de la mascota activa; el audio va siempre a audio-emotion.
// @Tags scans
// @Accept mpfd
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Param image formData file false "Foto de la mascota"
// @Param audio formData file false "Audio de la mascota"
// @Success 200 {object} resultResponse
// @Failure 400 {string} string "invalid media"
// @Failure 409 {string} string "pet identity not resolved"
// @Failure 415 {string} string "unsupported type"
// @Failure 502 {object} resultResponse "sentinel + mensaje de error"
// @Router /sessions/{sessionID}/emotion [post]
func emotionScanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}

		fh, kind, err := readScanFile(r, capture.KindImage, capture.KindAudio)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out, err := svc.ScanEmotion(r.Context(), sess, kind, fh)
		writeScanResult(w, SlotEmotion, out, err)
	}
}

// healthScanHandler godoc
// @Summary Escaneo de salud (piel)
// @Description Sube una foto (`image`). Si la condición está en la watch-list con confianza >= 60 se envía una única alerta SOS en background.
// @Tags scans
// @Accept mpfd
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Param image formData file true "Foto de la lesión"
// @Success 200 {object} resultResponse
// @Failure 400 {string} string "invalid media"
// @Failure 409 {string} string "pet identity not resolved"
// @Failure 415 {string} string "unsupported type"
// @Failure 502 {object} resultResponse "sentinel + mensaje de error"
// @Router /sessions/{sessionID}/health [post]
func healthScanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}

		fh, _, err := readScanFile(r, capture.KindImage)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out, err := svc.ScanHealth(r.Context(), sess, fh)
		writeScanResult(w, SlotHealth, out, err)
	}
}

type recordingRequest struct {
	MIME string `json:"mime"`
}

// startRecordingHandler godoc
// @Summary Empezar a grabar
// @Description Pide el permiso de micrófono. Solo una grabación activa por sesión.
// @Tags recording
// @Accept json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body recordingRequest false "MIME declarado por el grabador"
// @Success 201
// @Failure 403 {string} string "capture denied"
// @Failure 409 {string} string "recording already active"
// @Router /sessions/{sessionID}/recording [post]
func startRecordingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		var req recordingRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}
		if err := svc.StartRecording(r.Context(), sess, strings.TrimSpace(req.MIME)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// writeRecordingHandler godoc
// @Summary Agregar audio a la grabación
// @Tags recording
// @Accept octet-stream
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} map[string]int
// @Failure 400 {string} string "invalid media"
// @Router /sessions/{sessionID}/recording [put]
func writeRecordingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		chunk, err := io.ReadAll(io.LimitReader(r.Body, capture.MaxMediaBytes+1))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		n, err := svc.WriteRecording(sess, chunk)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"bytes": n})
	}
}

// stopRecordingHandler godoc
// @Summary Terminar grabación y escanear
// @Tags recording
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} resultResponse
// @Failure 400 {string} string "invalid media"
// @Failure 502 {object} resultResponse "sentinel + mensaje de error"
// @Router /sessions/{sessionID}/recording/stop [post]
func stopRecordingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		out, err := svc.StopRecording(r.Context(), sess)
		writeScanResult(w, SlotEmotion, out, err)
	}
}

type resultsResponse struct {
	Emotion resultResponse `json:"emotion"`
	Health  resultResponse `json:"health"`
}

// resultHandler godoc
// @Summary Último resultado
// @Tags scans
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} resultsResponse
// @Router /sessions/{sessionID}/result [get]
func resultHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		st := sess.State()
		writeJSON(w, http.StatusOK, resultsResponse{
			Emotion: toResultResponse(SlotEmotion, st.Emotion, st.EmotionInflight),
			Health:  toResultResponse(SlotHealth, st.Health, st.HealthInflight),
		})
	}
}

// previewHandler godoc
// @Summary Vista previa de la última captura
// @Tags scans
// @Produce octet-stream
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {file} binary
// @Failure 404 {string} string "no preview"
// @Router /sessions/{sessionID}/preview [get]
func previewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, svc)
		if !ok {
			return
		}
		p, _, found := sess.preview()
		if !found {
			http.Error(w, "no preview", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", p.MIME)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(p.Data)
	}
}

// nearbyVetsHandler godoc
// @Summary Veterinarias cercanas
// @Description Devuelve la URL de búsqueda en Google Maps para la ubicación dada.
// @Tags vets
// @Produce json
// @Param lat query number true "Latitud"
// @Param lng query number true "Longitud"
// @Success 200 {object} map[string]string
// @Failure 400 {string} string "lat and lng are required"
// @Router /vets/nearby [get]
func nearbyVetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := NearbyVetsURL(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": u})
	}
}

// sessionFromRequest responde 401/404 por su cuenta.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, svc *Service) (*Session, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	sess, err := svc.Get(claims.UserID, chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// readScanFile toma el primer campo presente entre los permitidos.
func readScanFile(r *http.Request, allowed ...capture.Kind) (capture.FileHandle, capture.Kind, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxScanUpload)
	if err := r.ParseMultipartForm(maxScanUpload); err != nil {
		return capture.FileHandle{}, "", errors.New("invalid multipart form")
	}

	for _, kind := range allowed {
		f, hdr, err := r.FormFile(string(kind))
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return capture.FileHandle{}, "", errors.New("invalid file " + string(kind))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return capture.FileHandle{}, "", errors.New("invalid file " + string(kind))
		}
		return capture.FileHandle{
			Name:        hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Data:        data,
		}, kind, nil
	}

	names := make([]string, 0, len(allowed))
	for _, k := range allowed {
		names = append(names, string(k))
	}
	return capture.FileHandle{}, "", errors.New("missing file field " + strings.Join(names, " or "))
}

// writeScanResult: un endpoint caído igual devuelve el sentinel en el cuerpo.
func writeScanResult(w http.ResponseWriter, slot Slot, out Outcome, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, toResultResponse(slot, out, false))
		return
	}
	if errors.Is(err, classify.ErrEndpointUnavailable) && out.Result != nil {
		writeJSON(w, http.StatusBadGateway, toResultResponse(slot, out, false))
		return
	}
	writeError(w, err)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, capture.ErrUnsupportedMedia):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, capture.ErrInvalidMedia):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, capture.ErrCaptureDenied):
		http.Error(w, "capture denied", http.StatusForbidden)
	case errors.Is(err, capture.ErrRecordingAlreadyActive),
		errors.Is(err, ErrIdentityRequired),
		errors.Is(err, identity.ErrIntentPending),
		errors.Is(err, identity.ErrNotActive):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, classify.ErrEndpointUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResultResponse(slot Slot, o Outcome, analyzing bool) resultResponse {
	resp := resultResponse{
		Slot:      slot,
		Label:     classify.Sentinel,
		Error:     o.Error,
		Escalated: o.Escalated,
		Endpoint:  string(o.Endpoint),
		PetID:     o.PetID,
		Analyzing: analyzing,
	}
	switch r := o.Result.(type) {
	case classify.EmotionResult:
		resp.Label = r.Label
		resp.Confidence = r.Percent()
	case classify.ConditionResult:
		resp.Label = r.Label
		resp.Confidence = r.Percent()
		resp.Advice = r.Advice
		if r.Label != classify.Sentinel {
			resp.Actions = classify.ImportantActions(r.Label)
		}
	}
	if analyzing {
		resp.Band = "Analyzing..."
	} else {
		resp.Band = classify.ConfidenceBand(resp.Confidence)
	}
	return resp
}

func toFlowResponse(s identity.Snapshot) flowResponse {
	return flowResponse{
		State:       s.State,
		PendingKind: s.PendingKind,
		SpeciesTab:  s.SpeciesTab,
		ChosenPetID: s.ChosenPetID,
	}
}

func toPetRef(p pets.Pet) petRef {
	return petRef{ID: p.ID, Name: p.Name, Species: p.Species, Breed: p.Breed, ImageURL: p.ImageURL}
}

func toSessionResponse(st State) sessionResponse {
	resp := sessionResponse{
		ID:             st.ID,
		Flow:           toFlowResponse(st.Flow),
		Species:        st.Species,
		Awaiting:       st.Awaiting,
		Recording:      st.Recording,
		RecordingBytes: st.RecordingBytes,
		HasPreview:     st.HasPreview,
		Emotion:        toResultResponse(SlotEmotion, st.Emotion, st.EmotionInflight),
		Health:         toResultResponse(SlotHealth, st.Health, st.HealthInflight),
	}
	if st.ActivePet != nil {
		ref := toPetRef(*st.ActivePet)
		resp.ActivePet = &ref
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
