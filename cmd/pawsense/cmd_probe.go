package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/classify"
	"pawsense/internal/domain/escalation"
	"pawsense/internal/platform/logger"
)

var probeFlags struct {
	endpoint string
	file     string
	verbose  bool
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Envía un archivo a un endpoint y muestra el resultado normalizado",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	f := probeCmd.Flags()
	f.StringVar(&probeFlags.endpoint, "endpoint", string(classify.DogEmotion), "dog-emotion | cat-emotion | audio-emotion | dog-skin | cat-skin")
	f.StringVar(&probeFlags.file, "file", "", "Imagen o audio a enviar (required)")
	f.BoolVarP(&probeFlags.verbose, "verbose", "v", false, "Loguea el dispatch en stderr")

	_ = probeCmd.MarkFlagRequired("file")
}

func runProbe(cmd *cobra.Command, _ []string) error {
	endpoint := classify.EndpointID(probeFlags.endpoint)
	if _, ok := classify.EndpointPath(endpoint); !ok {
		return fmt.Errorf("unknown endpoint %q (see 'pawsense endpoints')", probeFlags.endpoint)
	}

	data, err := os.ReadFile(probeFlags.file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	log := logger.Nop()
	if probeFlags.verbose {
		log = logger.New(logger.Options{Level: logger.Debug, Output: cmd.ErrOrStderr(), App: "pawsense-cli"})
	}

	adapter := capture.NewAdapter(nil, nil, log)
	fh := capture.FileHandle{Name: filepath.Base(probeFlags.file), Data: data}
	var media capture.CapturedMedia
	if classify.MediaKindFor(endpoint) == capture.KindAudio {
		media, err = adapter.CaptureAudioFile(fh)
	} else {
		media, err = adapter.CaptureImage(fh)
	}
	if err != nil {
		return err
	}
	defer adapter.Previews().Release(media.PreviewRef)

	ml, err := newMLClient()
	if err != nil {
		return err
	}

	res, err := classify.NewEngine(ml, log).Dispatch(cmd.Context(), media, endpoint)
	if err != nil && !errors.Is(err, classify.ErrEndpointUnavailable) {
		return err
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader([]any{"Field", "Value"})
	t.AppendRow([]any{"endpoint", endpoint})
	t.AppendRow([]any{"mime", media.MIME})
	t.AppendRow([]any{"bytes", len(media.Data)})
	switch r := res.(type) {
	case classify.EmotionResult:
		t.AppendRow([]any{"emotion", r.Label})
	case classify.ConditionResult:
		t.AppendRow([]any{"condition", r.Label})
		t.AppendRow([]any{"advice", r.Advice})
		t.AppendRow([]any{"would alert", escalation.NewPolicy(nil, 0, log).ShouldEscalate(r)})
	}
	t.AppendRow([]any{"confidence", fmt.Sprintf("%d%% (%s)", res.Percent(), classify.ConfidenceBand(res.Percent()))})
	if err != nil {
		t.AppendRow([]any{"error", err.Error()})
	}
	t.Render()
	return err
}
