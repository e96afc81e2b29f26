package main

import (
	"io"
	"strings"

	"pawsense/internal/adapters/mlapi"
	"pawsense/internal/platform/config"

	"github.com/jedib0t/go-pretty/v6/table"
)

// newMLClient arma el cliente con la config del entorno; los flags la pisan.
func newMLClient() (*mlapi.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	inf := cfg.Inference
	if v := strings.TrimSpace(rootFlags.baseURL); v != "" {
		inf.BaseURL = v
		inf.ReportBaseURL = v
		if strings.TrimSpace(rootFlags.healthBaseURL) == "" {
			inf.HealthBaseURL = v
			inf.AlertBaseURL = v
		}
	}
	if v := strings.TrimSpace(rootFlags.healthBaseURL); v != "" {
		inf.HealthBaseURL = v
		inf.AlertBaseURL = v
	}

	c, err := mlapi.NewClient(mlapi.Config{
		BaseURL:       inf.BaseURL,
		HealthBaseURL: inf.HealthBaseURL,
		AlertBaseURL:  inf.AlertBaseURL,
		ReportBaseURL: inf.ReportBaseURL,
		Timeout:       inf.Timeout,
		AlertTimeout:  inf.AlertTimeout,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}
