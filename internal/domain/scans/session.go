package scans

import (
	"context"
	"sync"
	"time"

	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/identity"
	"pawsense/internal/domain/pets"
)

// Context es la selección vigente de la sesión: quién escanea y a qué mascota
// se atribuye. Se pasa explícito a cada dispatch.
type Context struct {
	UserID    string
	ActivePet *pets.Pet
	Species   pets.Species
}

// Session es una sesión de escaneo de un usuario. Implementa identity.Target.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	flow     *identity.Flow
	recorder *capture.Recorder
	previews *capture.PreviewRegistry
	sink     *Sink

	mu         sync.Mutex
	activePet  *pets.Pet
	awaiting   capture.Kind // picker reabierto tras confirmar la mascota
	recording  *capture.RecordingSession
	previewRef string
	previewOf  capture.Kind
	lastSeen   time.Time
}

func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Context{UserID: s.UserID, Species: pets.SpeciesDog}
	if s.activePet != nil {
		p := *s.activePet
		c.ActivePet = &p
		c.Species = p.Species
	}
	return c
}

// SetActivePet fija la mascota y con ella la especie activa.
func (s *Session) SetActivePet(p pets.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activePet = &p
}

// ResumeCapture reanuda la captura pendiente: imagen deja el picker abierto,
// audio arranca la grabación.
func (s *Session) ResumeCapture(ctx context.Context, kind capture.Kind) error {
	if kind == capture.KindAudio {
		return s.startRecording(ctx, "")
	}
	s.mu.Lock()
	s.awaiting = kind
	s.mu.Unlock()
	return nil
}

func (s *Session) startRecording(ctx context.Context, mime string) error {
	rs, err := s.recorder.Start(ctx, s.UserID, mime)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.recording = rs
	s.awaiting = ""
	s.mu.Unlock()
	return nil
}

// takeRecording devuelve la grabación activa y la desvincula de la sesión.
func (s *Session) takeRecording() *capture.RecordingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := s.recording
	s.recording = nil
	return rs
}

func (s *Session) activeRecording() *capture.RecordingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// replacePreview libera la vista previa anterior: hay una sola por sesión.
func (s *Session) replacePreview(m capture.CapturedMedia) {
	s.mu.Lock()
	old := s.previewRef
	s.previewRef = m.PreviewRef
	s.previewOf = m.Kind
	s.awaiting = ""
	s.mu.Unlock()

	if old != m.PreviewRef {
		s.previews.Release(old)
	}
}

func (s *Session) preview() (capture.Preview, capture.Kind, bool) {
	s.mu.Lock()
	ref, kind := s.previewRef, s.previewOf
	s.mu.Unlock()

	p, ok := s.previews.Get(ref)
	return p, kind, ok
}

func (s *Session) touch(at time.Time) {
	s.mu.Lock()
	s.lastSeen = at
	s.mu.Unlock()
}

// idle: sin requests desde hace más de d y sin clasificación en vuelo.
func (s *Session) idle(now time.Time, d time.Duration) bool {
	s.mu.Lock()
	seen := s.lastSeen
	s.mu.Unlock()
	if now.Sub(seen) <= d {
		return false
	}
	return !s.sink.Inflight(SlotEmotion) && !s.sink.Inflight(SlotHealth)
}

// close libera vista previa y grabación; la sesión no se usa más.
func (s *Session) close() {
	s.flow.Cancel()
	s.recorder.Abort()

	s.mu.Lock()
	ref := s.previewRef
	s.previewRef = ""
	s.recording = nil
	s.awaiting = ""
	s.mu.Unlock()

	s.previews.Release(ref)
}

// State es la foto de la sesión que ve el cliente.
type State struct {
	ID              string
	Flow            identity.Snapshot
	ActivePet       *pets.Pet
	Species         pets.Species
	Awaiting        capture.Kind
	Recording       bool
	RecordingBytes  int
	HasPreview      bool
	EmotionInflight bool
	HealthInflight  bool
	Emotion         Outcome
	Health          Outcome
}

func (s *Session) State() State {
	c := s.Context()

	s.mu.Lock()
	st := State{
		ID:         s.ID,
		ActivePet:  c.ActivePet,
		Species:    c.Species,
		Awaiting:   s.awaiting,
		HasPreview: s.previewRef != "",
	}
	rs := s.recording
	s.mu.Unlock()

	if rs != nil {
		st.Recording = true
		st.RecordingBytes = rs.Len()
	}
	st.Flow = s.flow.Snapshot()
	st.EmotionInflight = s.sink.Inflight(SlotEmotion)
	st.HealthInflight = s.sink.Inflight(SlotHealth)
	st.Emotion = s.sink.Latest(SlotEmotion)
	st.Health = s.sink.Latest(SlotHealth)
	return st
}
