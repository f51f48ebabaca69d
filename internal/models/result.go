package models

// LegacyAnalyzeResponse is the free-text report shape served when the
// deployment is configured for the legacy response format.
type LegacyAnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
