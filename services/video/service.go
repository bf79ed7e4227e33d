package video

import (
	"context"
	stderrors "errors"
	"strings"

	"yt-brief/downloader"
	"yt-brief/errors"
	"yt-brief/models"
	"yt-brief/validation"
	"yt-brief/youtube"

	"github.com/sirupsen/logrus"
)

type service struct {
	fetcher     Fetcher
	transcriber Transcriber
	summarizer  Summarizer
	validator   *validation.Validator
	config      Config
	logger      *logrus.Logger
}

func NewService(
	fetcher Fetcher,
	transcriber Transcriber,
	summarizer Summarizer,
	validator *validation.Validator,
	config Config,
	logger *logrus.Logger,
) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		fetcher:     fetcher,
		transcriber: transcriber,
		summarizer:  summarizer,
		validator:   validator,
		config:      config,
		logger:      logger,
	}
}

// Process runs the pipeline sequentially, aborting on the first stage that
// yields no usable result. Input validation happens before any external call.
func (s *service) Process(ctx context.Context, req models.ProcessRequest) (*models.ProcessResult, error) {
	const op = "VideoService.Process"
	logger := s.logger.WithField("url", req.URL)
	logger.Info("Starting processing request")

	if err := s.validator.ValidateURL(req.URL); err != nil {
		logger.WithError(err).Warn("URL validation failed")
		return nil, err
	}

	apiKey := s.resolveAPIKey(req.APIKey)
	if apiKey == "" {
		return nil, errors.InvalidInput(op, nil, "OpenAI API key is required")
	}

	videoID, ok := youtube.ExtractVideoID(req.URL)
	if !ok {
		return nil, errors.InvalidInput(op, nil, "Could not extract a video ID from the URL")
	}
	logger = logger.WithField("video_id", videoID)

	targetWords := s.validator.ValidateSummaryWords(req.SummaryWords)

	audio, _, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		logger.WithError(err).Error("Audio fetch failed")
		return nil, fetchError(op, err)
	}
	if len(audio) == 0 {
		return nil, errors.Unavailable(op, nil, "Could not extract audio from the video")
	}

	transcript, err := s.transcriber.Transcribe(ctx, apiKey, audio)
	if err != nil {
		logger.WithError(err).Error("Transcription failed")
		return nil, errors.Unavailable(op, err, "Could not transcribe audio")
	}
	if transcript == "" {
		return nil, errors.Unavailable(op, nil, "Transcription returned no text")
	}

	summaryText, err := s.summarizer.Summarize(ctx, apiKey, transcript, targetWords)
	if err != nil {
		logger.WithError(err).Error("Summarization failed")
		return nil, errors.Unavailable(op, err, "Could not generate summary")
	}

	logger.WithFields(logrus.Fields{
		"transcript_chars": len(transcript),
		"summary_chars":    len(summaryText),
		"target_words":     targetWords,
	}).Info("Processing completed")

	return &models.ProcessResult{
		Video:      models.Video{ID: videoID, URL: req.URL},
		EmbedURL:   youtube.EmbedURL(videoID),
		Transcript: transcript,
		Summary:    summaryText,
		Stats:      models.ComputeStats(transcript),
		SummaryFile: models.DownloadFile{
			Name:    models.DownloadFilename("summary", videoID),
			Content: summaryText,
		},
		TranscriptFile: models.DownloadFile{
			Name:    models.DownloadFilename("transcript", videoID),
			Content: transcript,
		},
	}, nil
}

// resolveAPIKey applies the credential precedence: the configured env/secret
// value wins, interactive entry fills in only when none is configured.
func (s *service) resolveAPIKey(requestKey string) string {
	if s.config.APIKey != "" {
		return s.config.APIKey
	}
	return strings.TrimSpace(requestKey)
}

// fetchError maps structured downloader failures to user-visible
// diagnostics, keeping the blocked case distinct from generic ones.
func fetchError(op string, err error) error {
	var dlErr *downloader.Error
	if stderrors.As(err, &dlErr) {
		switch dlErr.Kind {
		case downloader.KindBlocked:
			return errors.Unavailable(op, err,
				"YouTube is blocking the download. The video may be age-restricted, "+
					"region-locked, require sign-in, or tripping anti-bot measures.")
		case downloader.KindProbe:
			return errors.Unavailable(op, err, "Could not extract video information")
		case downloader.KindNoData:
			return errors.Unavailable(op, err, "Download produced no audio data")
		}
	}
	return errors.Unavailable(op, err, "Could not extract audio from the video")
}
