package main

import (
	"github.com/spf13/cobra"

	"pawsense/internal/domain/classify"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Lista los endpoints de inferencia y qué medio aceptan",
	Args:  cobra.NoArgs,
	RunE:  runEndpoints,
}

func runEndpoints(cmd *cobra.Command, _ []string) error {
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader([]any{"Endpoint", "Path", "Media", "Family"})
	for _, id := range classify.Endpoints() {
		path, _ := classify.EndpointPath(id)
		family := "emotion"
		if classify.IsHealthEndpoint(id) {
			family = "health"
		}
		t.AppendRow([]any{id, path, classify.MediaKindFor(id), family})
	}
	t.Render()
	return nil
}
