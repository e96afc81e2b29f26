package scans

import (
	"testing"

	"pawsense/internal/domain/classify"
)

func TestSink_InitialSentinels(t *testing.T) {
	s := NewSink(PolicyLatestRequest)

	if em := s.Latest(SlotEmotion).Result.(classify.EmotionResult); em.Label != classify.Sentinel || em.Percent() != 0 {
		t.Fatalf("unexpected initial emotion %+v", em)
	}
	cond := s.Latest(SlotHealth).Result.(classify.ConditionResult)
	if cond.Label != classify.Sentinel || cond.Advice != classify.InitialAdvice {
		t.Fatalf("unexpected initial condition %+v", cond)
	}
}

func TestSink_LatestRequestDropsStale(t *testing.T) {
	s := NewSink(PolicyLatestRequest)
	first := s.Begin(SlotEmotion)
	second := s.Begin(SlotEmotion)

	if !s.Publish(SlotEmotion, Outcome{Token: second, Result: classify.EmotionResult{Label: "Happy", Confidence: 90}}) {
		t.Fatalf("newest response must publish")
	}
	if s.Publish(SlotEmotion, Outcome{Token: first, Result: classify.EmotionResult{Label: "Sad", Confidence: 10}}) {
		t.Fatalf("stale response must be discarded")
	}
	if s.Inflight(SlotEmotion) {
		t.Fatalf("both dispatches finished")
	}
	if got := s.Latest(SlotEmotion).Token; got != second {
		t.Fatalf("expected token %d, got %d", second, got)
	}
}

func TestSink_SlotsAreIndependent(t *testing.T) {
	s := NewSink(PolicyLatestRequest)
	emo := s.Begin(SlotEmotion)
	health := s.Begin(SlotHealth)

	s.Publish(SlotHealth, Outcome{Token: health, Result: classify.ConditionResult{Label: "healthy", Confidence: 95}})
	if !s.Publish(SlotEmotion, Outcome{Token: emo, Result: classify.EmotionResult{Label: "Normal", Confidence: 50}}) {
		t.Fatalf("an older token in another slot is not stale")
	}
}

func TestSink_AbortReleasesInflight(t *testing.T) {
	s := NewSink(PolicyLastArrival)
	s.Begin(SlotHealth)
	s.Abort(SlotHealth)
	s.Abort(SlotHealth)
	if s.Inflight(SlotHealth) {
		t.Fatalf("abort must release the slot")
	}
}

func TestParseResultPolicy(t *testing.T) {
	if p, err := ParseResultPolicy(""); err != nil || p != PolicyLatestRequest {
		t.Fatalf("default should be latest-request, got %q %v", p, err)
	}
	if p, err := ParseResultPolicy("last-arrival"); err != nil || p != PolicyLastArrival {
		t.Fatalf("got %q %v", p, err)
	}
	if _, err := ParseResultPolicy("random"); err == nil {
		t.Fatalf("expected error")
	}
}
