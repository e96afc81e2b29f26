package mlapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/classify"
	"pawsense/internal/domain/escalation"
	"pawsense/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("ml api not configured")
	ErrUpstream      = errors.New("ml api upstream error")
)

const (
	sosPath    = "/sos-alert"
	reportPath = "/generate_report"
)

// Config: las bases vacías caen a BaseURL.
type Config struct {
	BaseURL       string
	HealthBaseURL string
	AlertBaseURL  string
	ReportBaseURL string

	Timeout      time.Duration
	AlertTimeout time.Duration
}

// Client habla con el servicio de inferencia: emociones, piel, SOS y reportes.
type Client struct {
	emotion *httpclient.Client
	health  *httpclient.Client
	alert   *httpclient.Client
	report  *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrNotConfigured
	}
	or := func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	}
	healthBase := or(cfg.HealthBaseURL, base)

	emotion, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	health, err := httpclient.NewWithBaseURL(healthBase, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	alert, err := httpclient.NewWithBaseURL(or(cfg.AlertBaseURL, healthBase), cfg.AlertTimeout)
	if err != nil {
		return nil, err
	}
	// sin timeout propio: lo limita el contexto del request
	report, err := httpclient.NewWithBaseURL(or(cfg.ReportBaseURL, base), 0)
	if err != nil {
		return nil, err
	}
	report.HTTP.Timeout = 0

	return &Client{emotion: emotion, health: health, alert: alert, report: report}, nil
}

type predictResponse struct {
	Emotion    *string `json:"emotion"`
	Disease    *string `json:"disease"`
	Confidence any     `json:"confidence"`
	Advice     *string `json:"advice"`
}

// Predict implementa classify.Transport.
func (c *Client) Predict(ctx context.Context, endpoint classify.EndpointID, field string, media capture.CapturedMedia) (classify.Prediction, error) {
	path, ok := classify.EndpointPath(endpoint)
	if !ok {
		return classify.Prediction{}, fmt.Errorf("%w: unknown endpoint %q", ErrUpstream, endpoint)
	}
	hc := c.emotion
	if classify.IsHealthEndpoint(endpoint) {
		hc = c.health
	}

	var out predictResponse
	err := hc.DoMultipart(ctx, path, httpclient.FilePart{
		Field:       field,
		Filename:    media.Filename,
		ContentType: media.MIME,
		Data:        media.Data,
	}, &out)
	if err != nil {
		return classify.Prediction{}, fmt.Errorf("%w: %s: %v", ErrUpstream, path, err)
	}
	// un 2xx vacío no es una predicción
	if out.Emotion == nil && out.Disease == nil && out.Confidence == nil {
		return classify.Prediction{}, fmt.Errorf("%w: %s: empty response", ErrUpstream, path)
	}

	return classify.Prediction{
		Emotion:    out.Emotion,
		Disease:    out.Disease,
		Confidence: out.Confidence,
		Advice:     out.Advice,
	}, nil
}

type sosRequest struct {
	Disease    string `json:"disease"`
	Confidence int    `json:"confidence"`
}

// SendAlert implementa escalation.Alerter. El body de respuesta se ignora.
func (c *Client) SendAlert(ctx context.Context, ev escalation.AlertEvent) error {
	err := c.alert.DoJSON(ctx, "POST", sosPath, nil, sosRequest{
		Disease:    ev.Condition,
		Confidence: ev.Confidence,
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, sosPath, err)
	}
	return nil
}

// GenerateReport manda el payload guardado y copia el documento a open(contentType).
func (c *Client) GenerateReport(ctx context.Context, payload []byte, open func(contentType string) io.Writer) error {
	if err := c.report.StreamJSON(ctx, reportPath, payload, open); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, reportPath, err)
	}
	return nil
}
