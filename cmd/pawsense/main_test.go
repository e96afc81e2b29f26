package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootFlags.baseURL, rootFlags.healthBaseURL = "", ""
		probeFlags.verbose = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEndpoints_ListsEveryEndpoint(t *testing.T) {
	out, err := execute(t, "endpoints")
	if err != nil {
		t.Fatalf("endpoints: %v", err)
	}
	for _, want := range []string{"dog-emotion", "/predict_cat", "/predict_audio", "audio", "cat-skin", "health"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestProbe_HealthEndpoint(t *testing.T) {
	var gotPath, gotField string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			for f := range r.MultipartForm.File {
				gotField = f
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"disease":"Fungal","confidence":64.4}`))
	}))
	defer srv.Close()

	img := filepath.Join(t.TempDir(), "paw.jpg")
	if err := os.WriteFile(img, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}

	out, err := execute(t, "probe", "--base-url", srv.URL, "--endpoint", "cat-skin", "--file", img)
	if err != nil {
		t.Fatalf("probe: %v\n%s", err, out)
	}
	if gotPath != "/cat-skin" || gotField != "image" {
		t.Fatalf("unexpected upload path=%q field=%q", gotPath, gotField)
	}
	for _, want := range []string{"fungal", "64% (High Confidence)", "would alert", "true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestProbe_UnknownEndpoint(t *testing.T) {
	img := filepath.Join(t.TempDir(), "paw.jpg")
	_ = os.WriteFile(img, []byte{0xFF, 0xD8, 0xFF}, 0o600)

	if _, err := execute(t, "probe", "--endpoint", "horse-emotion", "--file", img); err == nil {
		t.Fatalf("expected error for unknown endpoint")
	}
}

func TestReport_WritesDocument(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate_report" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 cli"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	payload := filepath.Join(dir, "latest.json")
	_ = os.WriteFile(payload, []byte(`{"type":"emotion","media_kind":"image","endpoint":"dog-emotion","emotion":"Happy","confidence":88}`), 0o600)
	outFile := filepath.Join(dir, "report.pdf")

	out, err := execute(t, "report", "--base-url", srv.URL, "--payload", payload, "-o", outFile)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Saved") {
		t.Fatalf("unexpected output %q", out)
	}
	doc, _ := os.ReadFile(outFile)
	if string(doc) != "%PDF-1.4 cli" {
		t.Fatalf("unexpected document %q", doc)
	}
	if sent["emotion"] != "Happy" {
		t.Fatalf("payload not forwarded as-is: %v", sent)
	}
}

func TestReport_RejectsInvalidPayload(t *testing.T) {
	payload := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(payload, []byte(`{"confidence":10}`), 0o600)

	if _, err := execute(t, "report", "--payload", payload, "-o", filepath.Join(t.TempDir(), "x.pdf")); err == nil {
		t.Fatalf("expected error for payload without type")
	}
}
