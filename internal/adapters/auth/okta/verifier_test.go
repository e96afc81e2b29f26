package okta

import (
	"context"
	"errors"
	"testing"

	"pawsense/internal/ports/auth"

	"github.com/google/go-cmp/cmp"
	jwtverifier "github.com/okta/okta-jwt-verifier-golang"
)

type fakeVerifier struct {
	claims map[string]interface{}
	err    error
	got    string
}

func (f *fakeVerifier) VerifyAccessToken(jwt string) (*jwtverifier.Jwt, error) {
	f.got = jwt
	if f.err != nil {
		return nil, f.err
	}
	return &jwtverifier.Jwt{Claims: f.claims}, nil
}

func TestVerify_MapsOktaClaims(t *testing.T) {
	fv := &fakeVerifier{claims: map[string]interface{}{
		"uid":  "00u1abc",
		"sub":  "ana@example.com",
		"name": "Ana",
	}}
	v := &Verifier{v: fv}

	got, err := v.Verify(context.Background(), "  tok-1 ")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	want := auth.Claims{UserID: "00u1abc", Email: "ana@example.com", Name: "Ana"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("claims mismatch (-want +got):\n%s", diff)
	}
	if fv.got != "tok-1" {
		t.Fatalf("token not trimmed: %q", fv.got)
	}
}

func TestVerify_FallsBackToSub(t *testing.T) {
	v := &Verifier{v: &fakeVerifier{claims: map[string]interface{}{"sub": "svc-client"}}}
	got, err := v.Verify(context.Background(), "tok")
	if err != nil || got.UserID != "svc-client" || got.Email != "" {
		t.Fatalf("unexpected claims %+v %v", got, err)
	}
}

func TestVerify_Errors(t *testing.T) {
	if _, err := (&Verifier{v: &fakeVerifier{}}).Verify(context.Background(), " "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}

	boom := errors.New("token is expired")
	if _, err := (&Verifier{v: &fakeVerifier{err: boom}}).Verify(context.Background(), "tok"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped verifier error, got %v", err)
	}

	if _, err := (&Verifier{v: &fakeVerifier{claims: map[string]interface{}{}}}).Verify(context.Background(), "tok"); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}

	if _, err := NewVerifier(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
