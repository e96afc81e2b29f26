package scans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/classify"
	"pawsense/internal/domain/escalation"
	"pawsense/internal/domain/history"
	"pawsense/internal/domain/identity"
	"pawsense/internal/domain/pets"
	"pawsense/internal/domain/reports"
	"pawsense/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrIdentityRequired = errors.New("pet identity not resolved")
)

// DefaultSessionIdle es el tiempo sin requests tras el que el reaper cierra una sesión.
const DefaultSessionIdle = 30 * time.Minute

// PetDirectory es lo que el servicio necesita de pets: el listado del flujo de
// identidad y la búsqueda por dueño para cambiar de mascota.
type PetDirectory interface {
	identity.Directory
	GetOwned(ctx context.Context, ownerUserID, petID string) (pets.Pet, error)
}

// Deps agrupa los colaboradores del servicio. History y Reports son opcionales.
type Deps struct {
	Pets    PetDirectory
	Capture *capture.Adapter
	Engine  *classify.Engine
	Policy  *escalation.Policy
	History *history.Service
	Reports *reports.Service
	Results ResultPolicy
	Logger  logger.Logger
}

type Service struct {
	pets    PetDirectory
	capture *capture.Adapter
	engine  *classify.Engine
	policy  *escalation.Policy
	history *history.Service
	reports *reports.Service
	results ResultPolicy
	log     logger.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Results == "" {
		d.Results = PolicyLatestRequest
	}
	return &Service{
		pets:     d.Pets,
		capture:  d.Capture,
		engine:   d.Engine,
		policy:   d.Policy,
		history:  d.History,
		reports:  d.Reports,
		results:  d.Results,
		log:      d.Logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create abre una sesión sin mascota activa: la primera captura pasa por el flujo de identidad.
func (s *Service) Create(userID string) (*Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: empty user", ErrSessionNotFound)
	}
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.now(),
		recorder:  s.capture.NewRecorder(),
		previews:  s.capture.Previews(),
		sink:      NewSink(s.results),
	}
	sess.lastSeen = sess.CreatedAt
	sess.flow = identity.NewFlow(userID, s.pets, sess)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Info("scan session created", map[string]any{"session_id": sess.ID, "user_id": userID})
	return sess, nil
}

// Get solo devuelve sesiones del usuario; para otro usuario es ErrSessionNotFound.
func (s *Service) Get(userID, sessionID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	sess.touch(s.now())
	return sess, nil
}

func (s *Service) End(userID, sessionID string) error {
	sess, err := s.Get(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	sess.close()
	s.log.Info("scan session ended", map[string]any{"session_id": sessionID, "user_id": userID})
	return nil
}

// Reap cierra las sesiones sin actividad desde hace más de idle y devuelve
// cuántas cerró. Una sesión con un dispatch en vuelo se respeta.
func (s *Service) Reap(idle time.Duration) int {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	now := s.now()

	var stale []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idle(now, idle) {
			delete(s.sessions, id)
			stale = append(stale, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.close()
		s.log.Info("idle scan session reaped", map[string]any{"session_id": sess.ID, "user_id": sess.UserID})
	}
	return len(stale)
}

// RunReaper llama a Reap cada every hasta que ctx termina.
func (s *Service) RunReaper(ctx context.Context, idle, every time.Duration) {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	if every <= 0 {
		every = idle / 2
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Reap(idle)
		}
	}
}

// CaptureStart cuenta qué pasó al iniciar una captura.
type CaptureStart struct {
	// Gated: se abrió el flujo de identidad y la captura queda pendiente.
	Gated     bool
	Awaiting  capture.Kind
	Recording bool
}

// InitiateCapture: sin mascota activa abre el flujo de identidad; con mascota
// activa la captura sigue directo (picker o grabación).
func (s *Service) InitiateCapture(ctx context.Context, sess *Session, kind capture.Kind) (CaptureStart, error) {
	if sess.flow.Pending() {
		return CaptureStart{}, identity.ErrIntentPending
	}
	if sess.Context().ActivePet == nil {
		if err := sess.flow.Begin(kind); err != nil {
			return CaptureStart{}, err
		}
		return CaptureStart{Gated: true}, nil
	}

	if err := sess.ResumeCapture(ctx, kind); err != nil {
		return CaptureStart{}, err
	}
	if kind == capture.KindAudio {
		return CaptureStart{Recording: true}, nil
	}
	return CaptureStart{Awaiting: kind}, nil
}

// requireIdentity: no se despacha nada con una intención sin resolver ni sin mascota.
func requireIdentity(sess *Session) (Context, error) {
	if sess.flow.Pending() {
		return Context{}, fmt.Errorf("%w: %v", ErrIdentityRequired, identity.ErrIntentPending)
	}
	c := sess.Context()
	if c.ActivePet == nil {
		return Context{}, ErrIdentityRequired
	}
	return c, nil
}

// ScanEmotion captura un archivo (imagen o audio) y lo clasifica por emoción.
func (s *Service) ScanEmotion(ctx context.Context, sess *Session, kind capture.Kind, fh capture.FileHandle) (Outcome, error) {
	sc, err := requireIdentity(sess)
	if err != nil {
		return Outcome{}, err
	}

	var media capture.CapturedMedia
	if kind == capture.KindAudio {
		media, err = s.capture.CaptureAudioFile(fh)
	} else {
		media, err = s.capture.CaptureImage(fh)
	}
	if err != nil {
		return Outcome{}, err
	}
	sess.replacePreview(media)

	return s.dispatch(ctx, sess, sc, media, classify.ResolveEmotionEndpoint(media.Kind, sc.Species), SlotEmotion)
}

// ScanHealth clasifica una foto de piel y evalúa la escalada.
func (s *Service) ScanHealth(ctx context.Context, sess *Session, fh capture.FileHandle) (Outcome, error) {
	sc, err := requireIdentity(sess)
	if err != nil {
		return Outcome{}, err
	}

	media, err := s.capture.CaptureImage(fh)
	if err != nil {
		return Outcome{}, err
	}
	sess.replacePreview(media)

	return s.dispatch(ctx, sess, sc, media, classify.ResolveHealthEndpoint(sc.Species), SlotHealth)
}

func (s *Service) StartRecording(ctx context.Context, sess *Session, mime string) error {
	if _, err := requireIdentity(sess); err != nil {
		return err
	}
	return sess.startRecording(ctx, mime)
}

// WriteRecording agrega un chunk a la grabación en curso.
func (s *Service) WriteRecording(sess *Session, chunk []byte) (int, error) {
	rs := sess.activeRecording()
	if rs == nil {
		return 0, fmt.Errorf("%w: no active recording", capture.ErrInvalidMedia)
	}
	if _, err := rs.Write(chunk); err != nil {
		return 0, err
	}
	return rs.Len(), nil
}

// StopRecording cierra la grabación y la clasifica por emoción.
func (s *Service) StopRecording(ctx context.Context, sess *Session) (Outcome, error) {
	sc, err := requireIdentity(sess)
	if err != nil {
		return Outcome{}, err
	}

	media, err := sess.recorder.Stop(sess.takeRecording())
	if err != nil {
		return Outcome{}, err
	}
	sess.replacePreview(media)

	return s.dispatch(ctx, sess, sc, media, classify.AudioEmotion, SlotEmotion)
}

// dispatch corre desacoplado de la cancelación del request: no hay cancelación
// de un dispatch en vuelo. El resultado pasa siempre por el sink.
func (s *Service) dispatch(ctx context.Context, sess *Session, sc Context, media capture.CapturedMedia, endpoint classify.EndpointID, slot Slot) (Outcome, error) {
	dctx := context.WithoutCancel(ctx)
	l := logger.FromContext(ctx, s.log).With(map[string]any{
		"session_id": sess.ID,
		"pet_id":     sc.ActivePet.ID,
		"endpoint":   string(endpoint),
	})

	token := sess.sink.Begin(slot)
	res, err := s.engine.Dispatch(dctx, media, endpoint)
	if res == nil {
		sess.sink.Abort(slot)
		return Outcome{}, err
	}

	out := Outcome{
		Token:    token,
		Result:   res,
		Endpoint: endpoint,
		PetID:    sc.ActivePet.ID,
		At:       s.now(),
	}
	if err != nil {
		out.Error = failureMessage(media.Kind)
	} else if cond, ok := res.(classify.ConditionResult); ok && s.policy != nil {
		out.Escalated = s.policy.Evaluate(dctx, cond)
	}

	published := sess.sink.Publish(slot, out)
	if !published {
		l.Info("stale scan result discarded", map[string]any{"token": token})
	}
	if err != nil {
		return out, err
	}

	s.recordHistory(dctx, l, sc, media, out)
	if published {
		s.saveReport(dctx, l, sc, media, out)
	}
	return out, nil
}

func (s *Service) recordHistory(ctx context.Context, l logger.Logger, sc Context, media capture.CapturedMedia, out Outcome) {
	if s.history == nil {
		return
	}
	in := history.RecordInput{
		PetID:       sc.ActivePet.ID,
		OwnerUserID: sc.UserID,
		MediaKind:   string(media.Kind),
		Endpoint:    string(out.Endpoint),
		Escalated:   out.Escalated,
	}
	switch r := out.Result.(type) {
	case classify.EmotionResult:
		in.Kind = history.KindEmotion
		in.Label = r.Label
		in.Confidence = r.Confidence
	case classify.ConditionResult:
		in.Kind = history.KindHealth
		in.Label = r.Label
		in.Confidence = r.Confidence
		in.Advice = r.Advice
	}
	if _, err := s.history.Record(ctx, in); err != nil {
		l.Warn("scan history not recorded", map[string]any{"error": err})
	}
}

func (s *Service) saveReport(ctx context.Context, l logger.Logger, sc Context, media capture.CapturedMedia, out Outcome) {
	if s.reports == nil {
		return
	}
	p := reports.Payload{
		MediaKind:  string(media.Kind),
		Endpoint:   string(out.Endpoint),
		Pet:        &reports.PetSummary{ID: sc.ActivePet.ID, Name: sc.ActivePet.Name, Species: string(sc.Species)},
		Confidence: out.Result.Percent(),
		Escalated:  out.Escalated,
		CreatedAt:  out.At,
	}
	switch r := out.Result.(type) {
	case classify.EmotionResult:
		p.Type = string(history.KindEmotion)
		p.Emotion = r.Label
	case classify.ConditionResult:
		p.Type = string(history.KindHealth)
		p.Disease = r.Label
		p.Advice = r.Advice
		p.Actions = classify.ImportantActions(r.Label)
	}
	if err := s.reports.Save(ctx, sc.UserID, p); err != nil {
		l.Warn("report payload not saved", map[string]any{"error": err})
	}
}

func failureMessage(kind capture.Kind) string {
	if kind == capture.KindAudio {
		return classify.AudioFailureMessage
	}
	return classify.ImageFailureMessage
}

// Identity step passthroughs.

func (s *Service) Answer(sess *Session, registered bool) (identity.Snapshot, error) {
	if err := sess.flow.Answer(registered); err != nil {
		return identity.Snapshot{}, err
	}
	return sess.flow.Snapshot(), nil
}

func (s *Service) SetSpeciesTab(sess *Session, sp pets.Species) (identity.Snapshot, error) {
	if err := sess.flow.SetSpeciesTab(sp); err != nil {
		return identity.Snapshot{}, err
	}
	return sess.flow.Snapshot(), nil
}

func (s *Service) Candidates(ctx context.Context, sess *Session) ([]pets.Pet, error) {
	return sess.flow.Candidates(ctx)
}

func (s *Service) Choose(ctx context.Context, sess *Session, petID string) (bool, error) {
	return sess.flow.Choose(ctx, petID)
}

func (s *Service) Confirm(ctx context.Context, sess *Session) (identity.Confirmation, error) {
	c, err := sess.flow.Confirm(ctx)
	if c.Confirmed {
		s.log.Info("active pet selected", map[string]any{
			"session_id": sess.ID,
			"pet_id":     c.Pet.ID,
			"resumed":    string(c.Resumed),
		})
	}
	return c, err
}

// SwitchActivePet cambia la mascota activa de una sesión que ya tiene una
// selección. Con una captura pendiente responde identity.ErrIntentPending.
func (s *Service) SwitchActivePet(ctx context.Context, sess *Session, petID string) (pets.Pet, error) {
	if sess.flow.Pending() {
		return pets.Pet{}, identity.ErrIntentPending
	}
	p, err := s.pets.GetOwned(ctx, sess.UserID, petID)
	if err != nil {
		return pets.Pet{}, err
	}
	// CreatePetPrompt queda atrás: la sesión ya tiene mascota
	sess.flow.Cancel()
	sess.SetActivePet(p)

	s.log.Info("active pet switched", map[string]any{
		"session_id": sess.ID,
		"pet_id":     p.ID,
		"species":    string(p.Species),
	})
	return p, nil
}

func (s *Service) Cancel(sess *Session) identity.Snapshot {
	sess.flow.Cancel()
	return sess.flow.Snapshot()
}
