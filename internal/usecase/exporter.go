package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cv-generator/internal/domain"

	"github.com/google/uuid"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// DocumentRenderer produces a standalone HTML page for a CV.
type DocumentRenderer interface {
	Document(cv domain.CV) (string, error)
}

type ExportsRepo interface {
	Save(ctx context.Context, e *domain.CVExport) error
	List(ctx context.Context, limit int) ([]domain.CVExport, error)
}

var (
	ErrPDFUnavailable = errors.New("pdf rendering is not configured")
	ErrInvalidPDF     = errors.New("invalid PDF output")
)

var pdfMagic = []byte("%PDF")

// ExportResult is a finished download.
type ExportResult struct {
	Export *domain.CVExport
	PDF    []byte
}

type Exporter struct {
	renderer Renderer
	docs     DocumentRenderer
	repo     ExportsRepo
	outDir   string

	Attempts int
	Backoff  time.Duration

	now func() time.Time
	log *slog.Logger
}

// NewExporter wires the download flow. renderer and repo may be nil: without
// a renderer Export fails with ErrPDFUnavailable, without a repo records are
// not kept.
func NewExporter(r Renderer, docs DocumentRenderer, repo ExportsRepo, outDir string) *Exporter {
	return &Exporter{
		renderer: r,
		docs:     docs,
		repo:     repo,
		outDir:   outDir,
		Attempts: 3,
		Backoff:  time.Second,
		now:      time.Now,
		log:      slog.Default().With("component", "exporter"),
	}
}

func (e *Exporter) Enabled() bool { return e.renderer != nil }

// Export renders cv to PDF. The HTML artifact is written before rendering so
// it survives a failed render.
func (e *Exporter) Export(ctx context.Context, sessionID uuid.UUID, cv domain.CV) (*ExportResult, error) {
	if e.renderer == nil {
		return nil, ErrPDFUnavailable
	}

	html, err := e.docs.Document(cv)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	genDir := filepath.Join(e.outDir, "generated")
	if err := os.MkdirAll(genDir, 0o755); err != nil {
		return nil, err
	}
	base := fmt.Sprintf("cv_%s_%s", e.now().Format("20060102T150405"), sessionID.String()[:8])
	htmlPath := filepath.Join(genDir, base+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	rec := &domain.CVExport{
		ID:        uuid.New(),
		SessionID: sessionID,
		Title:     domain.ExportTitle(cv),
		Style:     cv.Style,
		Metadata:  map[string]interface{}{"generated_html": htmlPath},
		CreatedAt: e.now(),
	}

	pdf, renderErr := e.renderPDF(ctx, html)
	if renderErr != nil {
		e.log.Error("rendering failed", "attempts", e.Attempts, "error", renderErr)
		rec.Status = domain.ExportStatusHTMLOnly
		rec.FileName = filepath.Base(htmlPath)
		rec.FilePath = htmlPath
		rec.FileSize = len(html)
		rec.Metadata["pdf_render_error"] = renderErr.Error()
		e.save(ctx, rec)
		return nil, fmt.Errorf("render pdf: %w", renderErr)
	}

	pdfPath := filepath.Join(genDir, base+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return nil, err
	}
	rec.Status = domain.ExportStatusCompleted
	rec.FileName = filepath.Base(pdfPath)
	rec.FilePath = pdfPath
	rec.FileSize = len(pdf)
	rec.Metadata["generated_pdf"] = pdfPath
	e.save(ctx, rec)

	return &ExportResult{Export: rec, PDF: pdf}, nil
}

// Exports lists the most recent export records, newest first.
func (e *Exporter) Exports(ctx context.Context, limit int) ([]domain.CVExport, error) {
	if e.repo == nil {
		return []domain.CVExport{}, nil
	}
	return e.repo.List(ctx, limit)
}

func (e *Exporter) renderPDF(ctx context.Context, html string) ([]byte, error) {
	attempts := e.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, pdfMagic) {
				return pdf, nil
			}
			err = fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
		}
		lastErr = err
		e.log.Warn("render attempt failed", "attempt", i+1, "error", err)

		// exponential backoff before retrying
		if i < attempts-1 {
			select {
			case <-time.After(e.Backoff << i):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// save persists the record; failures are logged, never returned.
func (e *Exporter) save(ctx context.Context, rec *domain.CVExport) {
	if e.repo == nil {
		return
	}
	if err := e.repo.Save(ctx, rec); err != nil {
		e.log.Warn("unable to persist export record", "id", rec.ID, "error", err)
	}
}
