package escalation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pawsense/internal/domain/classify"
	"pawsense/internal/platform/logger"
)

var ErrAlertDelivery = errors.New("alert delivery failed")

// Threshold es la confianza mínima (redondeada) para escalar.
const Threshold = 60

// Watchlist son las condiciones que disparan un SOS.
var Watchlist = []string{
	"ringworm",
	"demodicosis",
	"hypersensitivity",
	"fungal",
	"dermatitis",
	"scabies",
	"flea_allergy",
}

// AlertEvent no se guarda ni se reintenta.
type AlertEvent struct {
	Condition  string
	Confidence int
}

type Alerter interface {
	SendAlert(ctx context.Context, ev AlertEvent) error
}

type Policy struct {
	alerter Alerter
	timeout time.Duration
	log     logger.Logger

	watch map[string]struct{}
	wg    sync.WaitGroup
}

func NewPolicy(alerter Alerter, timeout time.Duration, log logger.Logger) *Policy {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	watch := make(map[string]struct{}, len(Watchlist))
	for _, c := range Watchlist {
		watch[c] = struct{}{}
	}
	return &Policy{alerter: alerter, timeout: timeout, log: log, watch: watch}
}

// ShouldEscalate es la regla pura.
func (p *Policy) ShouldEscalate(r classify.ConditionResult) bool {
	_, watched := p.watch[r.Label]
	return watched && r.Percent() >= Threshold
}

// Evaluate decide y, si corresponde, envía un único AlertEvent en background.
// Nunca bloquea ni devuelve el error de envío: solo queda en el log.
func (p *Policy) Evaluate(ctx context.Context, r classify.ConditionResult) bool {
	if !p.ShouldEscalate(r) {
		return false
	}

	ev := AlertEvent{Condition: r.Label, Confidence: r.Percent()}
	// sobrevive a la cancelación del request que lo originó
	actx := context.WithoutCancel(ctx)
	l := logger.FromContext(ctx, p.log)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		sctx, cancel := context.WithTimeout(actx, p.timeout)
		defer cancel()

		if p.alerter == nil {
			l.Error("sos alert not delivered", map[string]any{
				"condition": ev.Condition,
				"error":     fmt.Errorf("%w: no alerter configured", ErrAlertDelivery),
			})
			return
		}
		if err := p.alerter.SendAlert(sctx, ev); err != nil {
			l.Error("sos alert not delivered", map[string]any{
				"condition":  ev.Condition,
				"confidence": ev.Confidence,
				"error":      fmt.Errorf("%w: %v", ErrAlertDelivery, err),
			})
			return
		}
		l.Info("sos alert sent", map[string]any{
			"condition":  ev.Condition,
			"confidence": ev.Confidence,
		})
	}()
	return true
}

// Wait espera las alertas en vuelo (se usa al apagar el proceso y en tests).
func (p *Policy) Wait() {
	p.wg.Wait()
}
