package capture

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"pawsense/internal/ports/capabilities"

	"github.com/gabriel-vasile/mimetype"
)

var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00}, 32)...)
	wavBytes  = append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), bytes.Repeat([]byte{0x00}, 32)...)
)

type fakeGrants struct {
	allow bool
	err   error
	calls int
}

func (f *fakeGrants) HasFeature(ctx context.Context, in capabilities.CapabilityCheck) (bool, error) {
	f.calls++
	if in.Capability != capabilities.Microphone {
		return false, nil
	}
	return f.allow, f.err
}

func TestCaptureImage_SniffsContent(t *testing.T) {
	a := NewAdapter(nil, nil, nil)

	m, err := a.CaptureImage(FileHandle{Name: "rex.jpg", ContentType: "application/octet-stream", Data: jpegBytes})
	if err != nil {
		t.Fatalf("CaptureImage: %v", err)
	}
	if m.Kind != KindImage || m.MIME != "image/jpeg" || m.Filename != "rex.jpg" {
		t.Fatalf("unexpected media %#v", m)
	}
	if m.PreviewRef == "" {
		t.Fatalf("expected preview ref")
	}
	if p, ok := a.Previews().Get(m.PreviewRef); !ok || p.MIME != "image/jpeg" {
		t.Fatalf("preview not registered: %#v ok=%v", p, ok)
	}

	// el tipo declarado no gana si el contenido dice otra cosa
	m, err = a.CaptureImage(FileHandle{ContentType: "image/jpeg", Data: pngBytes})
	if err != nil {
		t.Fatalf("CaptureImage png: %v", err)
	}
	if m.MIME != "image/png" || m.Filename != "capture.png" {
		t.Fatalf("unexpected media %#v", m)
	}
}

func TestCaptureImage_Invalid(t *testing.T) {
	a := NewAdapter(nil, nil, nil)

	cases := []FileHandle{
		{Name: "empty.jpg", ContentType: "image/jpeg"},
		{Name: "notes.txt", ContentType: "image/jpeg", Data: []byte("just some text")},
		{Name: "song.wav", ContentType: "audio/wav", Data: wavBytes},
	}
	for _, fh := range cases {
		if _, err := a.CaptureImage(fh); !errors.Is(err, ErrInvalidMedia) {
			t.Fatalf("%s: expected ErrInvalidMedia, got %v", fh.Name, err)
		}
	}
	if a.Previews().Len() != 0 {
		t.Fatalf("invalid captures must not register previews")
	}

	_, err := a.CaptureImage(FileHandle{Name: "song.wav", Data: wavBytes})
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia for audio bytes, got %v", err)
	}
}

func TestCaptureImage_FallsBackToDeclaredType(t *testing.T) {
	a := NewAdapter(nil, nil, nil)

	// bytes sin firma reconocible
	data := []byte{0x00, 0x01, 0x02, 0x03, 0xFE, 0xFD}
	m, err := a.CaptureImage(FileHandle{ContentType: "image/webp", Data: data})
	if err != nil {
		t.Fatalf("CaptureImage: %v", err)
	}
	if m.MIME != "image/webp" {
		t.Fatalf("expected declared type, got %q", m.MIME)
	}
}

func TestMatchAllowed_WalksAliasesAndParents(t *testing.T) {
	cases := []struct {
		name    string
		data    []byte
		allowed map[string]bool
		want    string
	}{
		{"alias", wavBytes, map[string]bool{"audio/x-wav": true}, "audio/x-wav"},
		{"parent", []byte(`{"label":"Happy"}`), map[string]bool{"text/plain": true}, "text/plain"},
		{"none", []byte(`{"label":"Happy"}`), allowedImage, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matchAllowed(mimetype.Detect(tc.data), tc.allowed)
			if got != tc.want {
				t.Fatalf("matchAllowed: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestCaptureAudio_AcceptsAliasedType(t *testing.T) {
	if got := resolveMIME(KindAudio, wavBytes, ""); got != "audio/wav" {
		t.Fatalf("resolveMIME wav: got %q", got)
	}
	if got := resolveMIME(KindImage, wavBytes, "image/png"); got != "" {
		t.Fatalf("audio bytes must not pass as image, got %q", got)
	}
}

func TestRecorder_StartWriteStop(t *testing.T) {
	g := &fakeGrants{allow: true}
	a := NewAdapter(g, nil, nil)
	rec := a.NewRecorder()

	rs, err := rec.Start(context.Background(), "u1", "audio/wav")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := rec.Start(context.Background(), "u1", "audio/wav"); !errors.Is(err, ErrRecordingAlreadyActive) {
		t.Fatalf("expected ErrRecordingAlreadyActive, got %v", err)
	}

	_, _ = rs.Write(wavBytes[:10])
	_, _ = rs.Write(wavBytes[10:])

	m, err := rec.Stop(rs)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if m.Kind != KindAudio || m.MIME != "audio/wav" || !bytes.Equal(m.Data, wavBytes) {
		t.Fatalf("unexpected media %#v", m)
	}
	if rec.Active() != nil {
		t.Fatalf("recorder should be idle after Stop")
	}
	if _, err := rs.Write([]byte("late")); !errors.Is(err, ErrInvalidMedia) {
		t.Fatalf("write after stop should fail, got %v", err)
	}
}

func TestRecorder_EmptyRecordingIsInvalid(t *testing.T) {
	a := NewAdapter(&fakeGrants{allow: true}, nil, nil)
	rec := a.NewRecorder()

	rs, err := rec.Start(context.Background(), "u1", "audio/webm")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := rec.Stop(rs); !errors.Is(err, ErrInvalidMedia) {
		t.Fatalf("expected ErrInvalidMedia, got %v", err)
	}
	// liberada: se puede volver a grabar
	if _, err := rec.Start(context.Background(), "u1", "audio/webm"); err != nil {
		t.Fatalf("Start after empty stop: %v", err)
	}
}

func TestRecorder_DeniedLeavesStateUnchanged(t *testing.T) {
	for _, g := range []*fakeGrants{{allow: false}, {err: errors.New("capabilities down")}} {
		a := NewAdapter(g, nil, nil)
		rec := a.NewRecorder()

		if _, err := rec.Start(context.Background(), "u1", "audio/wav"); !errors.Is(err, ErrCaptureDenied) {
			t.Fatalf("expected ErrCaptureDenied, got %v", err)
		}
		if rec.Active() != nil {
			t.Fatalf("denied start must not leave an active recording")
		}
		if g.calls != 1 {
			t.Fatalf("expected one grant lookup, got %d", g.calls)
		}
	}
}

func TestRecorder_Abort(t *testing.T) {
	a := NewAdapter(&fakeGrants{allow: true}, nil, nil)
	rec := a.NewRecorder()

	rs, _ := rec.Start(context.Background(), "u1", "audio/wav")
	_, _ = rs.Write(wavBytes)
	rec.Abort()

	if rec.Active() != nil {
		t.Fatalf("expected no active recording after Abort")
	}
	if _, err := rec.Stop(rs); !errors.Is(err, ErrInvalidMedia) {
		t.Fatalf("stop after abort should fail, got %v", err)
	}
}

func TestPreviewRegistry_Release(t *testing.T) {
	p := NewPreviewRegistry()
	ref := p.Put("image/png", pngBytes)
	p.Release(ref)
	p.Release(ref)
	if _, ok := p.Get(ref); ok || p.Len() != 0 {
		t.Fatalf("expected preview released")
	}
}
