// Package main is the cv-generator entry point: the HTTP API server and a
// one-shot renderer for CV documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "cv-generator",
	Short:        "CV builder with live preview and AI text enhancement",
	Long:         "cv-generator keeps CV drafts in memory, renders them in one of four styles and rewrites summaries and job descriptions through the Gemini API.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
