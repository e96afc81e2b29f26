package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"pawsense/internal/platform/logger"
	"pawsense/internal/ports/sessionstore"
)

var ErrNoReportData = errors.New("no report data")

const (
	// StorageKey es la clave fija donde queda el último resultado de cada usuario.
	StorageKey = "pawsense_report"

	Filename = "PawSense_Report.pdf"

	NoDataMessage = "Please analyze image or audio first"
)

// PetSummary identifica la mascota del escaneo.
type PetSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

// Payload es el último resultado serializado; se manda tal cual a /generate_report.
type Payload struct {
	Type       string      `json:"type"` // emotion | health
	MediaKind  string      `json:"media_kind"`
	Endpoint   string      `json:"endpoint"`
	Pet        *PetSummary `json:"pet,omitempty"`
	Emotion    string      `json:"emotion,omitempty"`
	Disease    string      `json:"disease,omitempty"`
	Confidence int         `json:"confidence"`
	Advice     string      `json:"advice,omitempty"`
	Actions    []string    `json:"important_actions,omitempty"`
	Escalated  bool        `json:"sos_sent,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Generator produce el documento a partir del payload.
type Generator interface {
	GenerateReport(ctx context.Context, payload []byte, open func(contentType string) io.Writer) error
}

type Service struct {
	store sessionstore.Store
	gen   Generator
	log   logger.Logger
}

func NewService(store sessionstore.Store, gen Generator, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, gen: gen, log: log}
}

// Save reemplaza el payload guardado del usuario.
func (s *Service) Save(ctx context.Context, userID string, p Payload) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}
	return s.store.Put(ctx, userID, StorageKey, b)
}

// Load devuelve el payload crudo o ErrNoReportData.
func (s *Service) Load(ctx context.Context, userID string) ([]byte, error) {
	b, ok, err := s.store.Get(ctx, userID, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || len(b) == 0 {
		return nil, ErrNoReportData
	}
	return b, nil
}

// Generate lee el payload del usuario y lo envía al generador.
// open recibe el Content-Type del documento antes del primer byte.
func (s *Service) Generate(ctx context.Context, userID string, open func(contentType string) io.Writer) error {
	payload, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.gen.GenerateReport(ctx, payload, open); err != nil {
		s.log.Warn("report generation failed", map[string]any{"user_id": userID, "error": err})
		return err
	}
	s.log.Info("report generated", map[string]any{
		"user_id":     userID,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
