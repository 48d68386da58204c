package domain

import (
	"time"

	"github.com/google/uuid"
)

// CVExport records one rendered download.
type CVExport struct {
	ID        uuid.UUID              `json:"id"`
	SessionID uuid.UUID              `json:"session_id"`
	Title     string                 `json:"title"`
	Style     CVStyle                `json:"style"`
	FileName  string                 `json:"file_name"`
	FilePath  string                 `json:"file_path"`
	FileSize  int                    `json:"file_size"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

const (
	ExportStatusCompleted = "completed"
	ExportStatusHTMLOnly  = "html_only"
)

// ExportTitle is the title stored with an export: the person's name when set.
func ExportTitle(cv CV) string {
	if cv.Personal.FullName != "" {
		return cv.Personal.FullName
	}
	return "CV"
}
