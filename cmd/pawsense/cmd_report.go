package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pawsense/internal/domain/reports"
)

var reportFlags struct {
	payload string
	out     string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Genera el reporte a partir de un payload guardado (GET /reports/latest)",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.payload, "payload", "", "JSON del último resultado (required)")
	f.StringVarP(&reportFlags.out, "out", "o", reports.Filename, "Archivo de salida")

	_ = reportCmd.MarkFlagRequired("payload")
}

func runReport(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(reportFlags.payload)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	var p reports.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if p.Type == "" {
		return fmt.Errorf("invalid payload: missing type")
	}

	ml, err := newMLClient()
	if err != nil {
		return err
	}

	f, err := os.Create(reportFlags.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", reportFlags.out, err)
	}
	defer f.Close()

	var contentType string
	cw := &countingWriter{w: f}
	err = ml.GenerateReport(cmd.Context(), raw, func(ct string) io.Writer {
		contentType = ct
		return cw
	})
	if err != nil {
		_ = os.Remove(reportFlags.out)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes, %s)\n", reportFlags.out, cw.n, contentType)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
