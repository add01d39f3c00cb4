package main

// FarmAI backend CLI:
//   go run ./cmd/farmai serve
//   go run ./cmd/farmai migrate --purge
//   go run ./cmd/farmai matrix --lat 40.1 --lng -88.2 --area 12.5

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "farmai",
		Short:        "FarmAI land analysis backend",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(matrixCmd())
	return rootCmd
}
