package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version se pisa en build con -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pawsense",
	Short: "Herramientas de operación para el servicio de inferencia de PawSense",
	Long:  "pawsense lista los endpoints de inferencia, prueba un archivo contra uno de ellos\ny descarga reportes a partir de un payload guardado.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

var rootFlags struct {
	baseURL       string
	healthBaseURL string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.baseURL, "base-url", "", "Base del servicio de emociones y reportes (default: config/INFERENCE_BASE_URL)")
	pf.StringVar(&rootFlags.healthBaseURL, "health-base-url", "", "Base de los endpoints de piel (default: --base-url)")

	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
