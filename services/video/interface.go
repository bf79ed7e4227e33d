package video

import (
	"context"

	"yt-brief/models"
)

// Service runs the full URL → audio → transcript → summary pipeline.
type Service interface {
	Process(ctx context.Context, req models.ProcessRequest) (*models.ProcessResult, error)
}

// Fetcher retrieves the raw bytes and container extension of the best
// available audio-only stream.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// Transcriber converts audio bytes into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, apiKey string, audio []byte) (string, error)
}

// Summarizer condenses transcript text to roughly targetWords words.
type Summarizer interface {
	Summarize(ctx context.Context, apiKey, transcript string, targetWords int) (string, error)
}

type Config struct {
	// APIKey is the credential from the environment or secret store. When
	// empty, a per-request key supplied by the user is accepted instead.
	APIKey string
}
