package http

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is the one user-visible message of an enhance or download.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

var (
	notifyEnhanced       = Notification{Level: LevelSuccess, Message: "CV content enhanced with AI!"}
	notifyEnhanceFailed  = Notification{Level: LevelError, Message: "Failed to enhance content. Please try again."}
	notifyDownloadStub   = Notification{Level: LevelSuccess, Message: "CV download functionality would be implemented here!"}
	notifyDownloadFailed = Notification{Level: LevelError, Message: "Failed to generate PDF. Please try again."}
)
