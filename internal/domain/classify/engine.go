package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawsense/internal/domain/capture"
	"pawsense/internal/platform/logger"
)

var ErrEndpointUnavailable = errors.New("endpoint unavailable")

// Prediction es la respuesta cruda de un endpoint de inferencia.
// Confidence queda como any: puede venir número, string o null.
type Prediction struct {
	Emotion    *string
	Disease    *string
	Confidence any
	Advice     *string
}

// Transport hace el upload multipart de un solo campo (image|audio).
// Cualquier respuesta no-2xx, error de red o JSON inválido es un error.
type Transport interface {
	Predict(ctx context.Context, endpoint EndpointID, field string, media capture.CapturedMedia) (Prediction, error)
}

// Engine envía un medio capturado al endpoint resuelto. No reintenta.
type Engine struct {
	transport Transport
	log       logger.Logger
}

func NewEngine(t Transport, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{transport: t, log: log}
}

// Dispatch devuelve siempre un Result mostrable: si el endpoint falla,
// el sentinel correspondiente junto con ErrEndpointUnavailable.
func (e *Engine) Dispatch(ctx context.Context, media capture.CapturedMedia, endpoint EndpointID) (Result, error) {
	if _, ok := EndpointPath(endpoint); !ok {
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}
	if len(media.Data) == 0 {
		return nil, fmt.Errorf("%w: empty media", capture.ErrInvalidMedia)
	}
	if want := MediaKindFor(endpoint); media.Kind != want {
		return nil, fmt.Errorf("%w: endpoint %s expects %s, got %s", capture.ErrInvalidMedia, endpoint, want, media.Kind)
	}

	start := time.Now()
	pred, err := e.transport.Predict(ctx, endpoint, string(media.Kind), media)
	fields := map[string]any{
		"endpoint":    string(endpoint),
		"media_kind":  string(media.Kind),
		"bytes":       len(media.Data),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		e.log.Warn("inference dispatch failed", fields)
		if IsHealthEndpoint(endpoint) {
			return SentinelCondition(), fmt.Errorf("%w: %v", ErrEndpointUnavailable, err)
		}
		return SentinelEmotion(), fmt.Errorf("%w: %v", ErrEndpointUnavailable, err)
	}

	var res Result
	if IsHealthEndpoint(endpoint) {
		res = toCondition(pred)
	} else {
		res = toEmotion(pred)
	}
	fields["percent"] = res.Percent()
	e.log.Debug("inference dispatch ok", fields)
	return res, nil
}

func toEmotion(p Prediction) EmotionResult {
	label := Sentinel
	if p.Emotion != nil {
		label = canonicalEmotion(*p.Emotion)
	}
	return EmotionResult{
		Label:      label,
		Confidence: ClampConfidence(p.Confidence),
	}
}

func toCondition(p Prediction) ConditionResult {
	label := UnknownCondition
	if p.Disease != nil && strings.TrimSpace(*p.Disease) != "" {
		label = strings.ToLower(strings.TrimSpace(*p.Disease))
	}
	advice := DefaultAdvice
	if p.Advice != nil && strings.TrimSpace(*p.Advice) != "" {
		advice = *p.Advice
	}
	return ConditionResult{
		Label:      label,
		Confidence: ClampConfidence(p.Confidence),
		Advice:     advice,
	}
}
