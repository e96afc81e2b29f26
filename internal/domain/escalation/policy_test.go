package escalation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pawsense/internal/domain/classify"
	"pawsense/internal/platform/logger"

	"github.com/google/go-cmp/cmp"
)

type recordingAlerter struct {
	mu     sync.Mutex
	events []AlertEvent
	err    error
	block  chan struct{}
}

func (a *recordingAlerter) SendAlert(ctx context.Context, ev AlertEvent) error {
	if a.block != nil {
		<-a.block
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	return a.err
}

func (a *recordingAlerter) sent() []AlertEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AlertEvent(nil), a.events...)
}

func TestShouldEscalate(t *testing.T) {
	p := NewPolicy(&recordingAlerter{}, 0, nil)

	cases := []struct {
		label string
		conf  float64
		want  bool
	}{
		{"ringworm", 60, true},
		{"ringworm", 59, false},
		{"ringworm", 59.5, true}, // se compara el valor redondeado
		{"healthy", 99, false},
		{"flea_allergy", 100, true},
		{"unknown", 90, false},
		{"Ringworm", 90, false},
	}
	for _, c := range cases {
		got := p.ShouldEscalate(classify.ConditionResult{Label: c.label, Confidence: c.conf})
		if got != c.want {
			t.Fatalf("ShouldEscalate(%s,%v) = %v, want %v", c.label, c.conf, got, c.want)
		}
	}
}

func TestEvaluate_SendsExactlyOneAlert(t *testing.T) {
	a := &recordingAlerter{}
	p := NewPolicy(a, time.Second, nil)

	if !p.Evaluate(context.Background(), classify.ConditionResult{Label: "ringworm", Confidence: 73}) {
		t.Fatalf("expected escalation")
	}
	if p.Evaluate(context.Background(), classify.ConditionResult{Label: "healthy", Confidence: 99}) {
		t.Fatalf("healthy must not escalate")
	}
	p.Wait()

	if diff := cmp.Diff([]AlertEvent{{Condition: "ringworm", Confidence: 73}}, a.sent()); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_DoesNotBlockAndSurvivesCancel(t *testing.T) {
	a := &recordingAlerter{block: make(chan struct{})}
	p := NewPolicy(a, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		done <- p.Evaluate(ctx, classify.ConditionResult{Label: "fungal", Confidence: 80})
	}()

	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("expected escalation")
		}
	case <-time.After(time.Second):
		t.Fatalf("Evaluate blocked on alert delivery")
	}

	cancel()
	close(a.block)
	p.Wait()

	if len(a.sent()) != 1 {
		t.Fatalf("expected one alert after request cancel, got %d", len(a.sent()))
	}
}

func TestEvaluate_FailureIsLoggedOnly(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatText, Output: &buf})

	a := &recordingAlerter{err: errors.New("connection refused")}
	p := NewPolicy(a, time.Second, log)

	if !p.Evaluate(context.Background(), classify.ConditionResult{Label: "scabies", Confidence: 61}) {
		t.Fatalf("expected escalation")
	}
	p.Wait()

	if len(a.sent()) != 1 {
		t.Fatalf("alerts are never retried, got %d attempts", len(a.sent()))
	}
	if !strings.Contains(buf.String(), "sos alert not delivered") || !strings.Contains(buf.String(), ErrAlertDelivery.Error()) {
		t.Fatalf("expected delivery failure in log, got %q", buf.String())
	}
}

func TestEvaluate_NoAlerterIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Options{Level: logger.Debug, Output: &buf})
	p := NewPolicy(nil, time.Second, l)

	if !p.Evaluate(context.Background(), classify.ConditionResult{Label: "scabies", Confidence: 80}) {
		t.Fatalf("decision does not depend on the alerter")
	}
	p.Wait()
	if !strings.Contains(buf.String(), "no alerter configured") {
		t.Fatalf("expected missing alerter in log, got %q", buf.String())
	}
}
