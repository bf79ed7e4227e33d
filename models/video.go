package models

import "fmt"

// Video pairs an input URL with the identifier parsed out of it.
type Video struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProcessRequest is the incoming request for a full processing run.
type ProcessRequest struct {
	URL          string `json:"url"`
	APIKey       string `json:"api_key,omitempty"`
	SummaryWords int    `json:"summary_words,omitempty"`
}

// DownloadFile describes one downloadable text artifact.
type DownloadFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ProcessResult is the API response for a completed run.
type ProcessResult struct {
	Video      Video        `json:"video"`
	EmbedURL   string       `json:"embed_url"`
	Transcript string       `json:"transcript"`
	Summary    string       `json:"summary"`
	Stats      Stats        `json:"stats"`

	SummaryFile    DownloadFile `json:"summary_file"`
	TranscriptFile DownloadFile `json:"transcript_file"`
}

// DownloadFilename builds the name for a downloadable artifact,
// e.g. youtube_summary_ABC123.txt.
func DownloadFilename(kind, videoID string) string {
	return fmt.Sprintf("youtube_%s_%s.txt", kind, videoID)
}
