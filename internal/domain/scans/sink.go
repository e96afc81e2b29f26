package scans

import (
	"fmt"
	"sync"
	"time"

	"pawsense/internal/domain/classify"
)

// ResultPolicy decide qué hacer con respuestas que llegan fuera de orden.
type ResultPolicy string

const (
	// PolicyLatestRequest descarta respuestas de requests más viejos que el ya publicado.
	PolicyLatestRequest ResultPolicy = "latest-request"
	// PolicyLastArrival publica siempre; gana la última respuesta en llegar.
	PolicyLastArrival ResultPolicy = "last-arrival"
)

func ParseResultPolicy(s string) (ResultPolicy, error) {
	switch ResultPolicy(s) {
	case "", PolicyLatestRequest:
		return PolicyLatestRequest, nil
	case PolicyLastArrival:
		return PolicyLastArrival, nil
	}
	return "", fmt.Errorf("unknown result policy %q", s)
}

// Slot es cada "pantalla" de resultados: emoción y salud son independientes.
type Slot string

const (
	SlotEmotion Slot = "emotion"
	SlotHealth  Slot = "health"
)

// Outcome es lo que muestra la sesión para un slot.
type Outcome struct {
	Token     uint64
	Result    classify.Result
	Error     string // mensaje inline si falló el dispatch
	Endpoint  classify.EndpointID
	PetID     string
	Escalated bool
	At        time.Time
}

// Sink guarda el último resultado por slot y el contador de dispatches en vuelo.
type Sink struct {
	policy ResultPolicy

	mu        sync.Mutex
	seq       uint64
	published map[Slot]uint64
	current   map[Slot]Outcome
	inflight  map[Slot]int
}

func NewSink(policy ResultPolicy) *Sink {
	return &Sink{
		policy:    policy,
		published: make(map[Slot]uint64),
		current: map[Slot]Outcome{
			SlotEmotion: {Result: classify.SentinelEmotion()},
			SlotHealth:  {Result: classify.ConditionResult{Label: classify.Sentinel, Advice: classify.InitialAdvice}},
		},
		inflight: make(map[Slot]int),
	}
}

// Begin reserva un token monotónico y marca el slot como ocupado.
func (s *Sink) Begin(slot Slot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inflight[slot]++
	return s.seq
}

// Abort libera un Begin que no llegó a producir resultado.
func (s *Sink) Abort(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[slot] > 0 {
		s.inflight[slot]--
	}
}

// Publish devuelve false si la respuesta quedó vieja y se descartó.
func (s *Sink) Publish(slot Slot, out Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[slot] > 0 {
		s.inflight[slot]--
	}
	if s.policy == PolicyLatestRequest && out.Token < s.published[slot] {
		return false
	}
	s.published[slot] = out.Token
	s.current[slot] = out
	return true
}

func (s *Sink) Latest(slot Slot) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current[slot]
}

// Inflight indica si hay un dispatch pendiente en el slot (el control se
// deshabilita, pero nada impide lanzar otro).
func (s *Sink) Inflight(slot Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[slot] > 0
}
