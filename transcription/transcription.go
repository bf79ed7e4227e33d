// Package transcription turns raw audio bytes into plain text through the
// hosted Whisper API.
package transcription

import (
	"context"
	"os"

	"yt-brief/config"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// The .m4a suffix matches the container the downloader's format chain
// prefers; the API identifies the format by the file extension.
const tempPattern = "yt-brief-*.m4a"

type Client struct {
	cfg config.OpenAIConfig
	log *logrus.Logger
}

func NewClient(cfg config.OpenAIConfig, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{cfg: cfg, log: log}
}

// Transcribe writes audio to a scoped temporary file, submits it for
// transcription and returns the plain text. The temporary file is removed on
// every exit path. Failures never yield partial text.
func (c *Client) Transcribe(ctx context.Context, apiKey string, audio []byte) (string, error) {
	const op = "TranscriptionClient.Transcribe"

	path, err := writeTempAudio(audio)
	if err != nil {
		return "", errors.Wrapf(err, "%s: failed to stage audio", op)
	}
	defer os.Remove(path)

	c.log.WithField("bytes", len(audio)).Info("Submitting audio for transcription")

	client := openai.NewClient(apiKey)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.cfg.WhisperModel,
		FilePath: path,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		c.log.WithError(err).Error("Transcription request failed")
		return "", errors.Wrapf(err, "%s: transcription request failed", op)
	}

	c.log.WithField("chars", len(resp.Text)).Info("Transcription completed")
	return resp.Text, nil
}

// writeTempAudio stages audio bytes in a temporary file the API client can
// open by path. The caller owns removal.
func writeTempAudio(audio []byte) (string, error) {
	f, err := os.CreateTemp("", tempPattern)
	if err != nil {
		return "", err
	}

	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
