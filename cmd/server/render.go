package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"cv-generator/internal/model"
	"cv-generator/internal/preview"
	"cv-generator/internal/store"
	"cv-generator/internal/usecase"
	infra "cv-generator/pkg/infrastructure"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV document to HTML and optionally PDF",
	Long:  "Validates a CV JSON document (the shape served by /api/sessions/:id/document) and writes the standalone HTML page, plus a PDF when --pdf is given.",
	RunE:  runRender,
}

var (
	renderInFile     string
	renderOutFile    string
	renderPDFFile    string
	renderChromePath string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInFile, "in", "i", "", "Path to CV JSON document (required)")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Path to output HTML file (required)")
	renderCmd.Flags().StringVar(&renderPDFFile, "pdf", "", "Path to output PDF file (optional)")
	renderCmd.Flags().StringVar(&renderChromePath, "chrome-path", os.Getenv("CHROME_PATH"), "Chrome binary used for --pdf")

	_ = renderCmd.MarkFlagRequired("in")
	_ = renderCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	var pdf usecase.Renderer
	if renderPDFFile != "" {
		pdf = infra.NewChromedpRenderer(renderChromePath)
	}
	if err := renderFile(cmd.Context(), renderInFile, renderOutFile, renderPDFFile, pdf); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderOutFile)
	if renderPDFFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderPDFFile)
	}
	return nil
}

func renderFile(ctx context.Context, in, out, pdfOut string, pdf usecase.Renderer) error {
	raw, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	cv, err := model.DecodeDocument(raw)
	if err != nil {
		return err
	}
	cv = store.Normalize(cv)

	previews, err := preview.NewRenderer()
	if err != nil {
		return err
	}
	html, err := previews.Document(cv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	if pdfOut == "" || pdf == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := pdf.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		return usecase.ErrInvalidPDF
	}
	return os.WriteFile(pdfOut, b, 0o644)
}
