// Package summary condenses a transcript into a bounded-length summary
// through a hosted chat model.
package summary

import (
	"context"
	"fmt"

	"yt-brief/config"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	systemPrompt = "You are a helpful assistant that summarizes YouTube video transcripts. " +
		"Provide a concise summary with key points and main takeaways."
	userPromptFormat = "Please summarize this YouTube video transcript in about %d words:\n\n%s"

	truncationMarker = "..."

	// Response token budget margin on top of the target word count.
	tokenMargin = 100

	temperature = 0.7
)

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

// Summarize submits the transcript for summarization, truncating it to the
// configured character budget first. A failure is returned as an error, never
// as summary content.
func (c *Client) Summarize(ctx context.Context, apiKey, transcript string, targetWords int) (string, error) {
	const op = "SummaryClient.Summarize"

	if targetWords <= 0 {
		targetWords = c.cfg.DefaultSummaryWords
	}

	text, truncated := Truncate(transcript, c.cfg.MaxTranscriptChars)
	c.log.WithFields(logrus.Fields{
		"target_words": targetWords,
		"chars":        len(text),
		"truncated":    truncated,
	}).Info("Submitting transcript for summarization")

	client := openai.NewClient(apiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptFormat, targetWords, text)},
		},
		MaxTokens:   targetWords + tokenMargin,
		Temperature: temperature,
	})
	if err != nil {
		c.log.WithError(err).Error("Summarization request failed")
		return "", errors.Wrapf(err, "%s: summarization request failed", op)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Errorf("%s: model returned no choices", op)
	}

	summary := resp.Choices[0].Message.Content
	c.log.WithField("chars", len(summary)).Info("Summarization completed")
	return summary, nil
}

// Truncate caps text at maxChars characters, appending the truncation marker
// only when something was cut.
func Truncate(text string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}
	return string(runes[:maxChars]) + truncationMarker, true
}
