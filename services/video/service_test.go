package video

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"yt-brief/config"
	"yt-brief/errors"
	"yt-brief/models"
	"yt-brief/validation"
)

type fakeFetcher struct {
	calls int
	audio []byte
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	f.calls++
	return f.audio, "m4a", f.err
}

type fakeTranscriber struct {
	calls int
	text  string
	err   error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, apiKey string, audio []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeSummarizer struct {
	calls    int
	gotWords int
	summary  string
	err      error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, apiKey, transcript string, targetWords int) (string, error) {
	f.calls++
	f.gotWords = targetWords
	return f.summary, f.err
}

func newTestService(fetcher *fakeFetcher, transcriber *fakeTranscriber, summarizer *fakeSummarizer, apiKey string) Service {
	cfg := &config.Config{
		OpenAI: config.OpenAIConfig{
			DefaultSummaryWords: 300,
			MinSummaryWords:     100,
			MaxSummaryWords:     1000,
			SummaryWordsStep:    50,
		},
	}
	return NewService(
		fetcher,
		transcriber,
		summarizer,
		validation.NewValidator(cfg),
		Config{APIKey: apiKey},
		nil,
	)
}

func TestProcessEndToEnd(t *testing.T) {
	fetcher := &fakeFetcher{audio: []byte("audio-bytes")}
	transcriber := &fakeTranscriber{text: "Hello world. This is a test. Goodbye."}
	summarizer := &fakeSummarizer{summary: "A short test video."}
	svc := newTestService(fetcher, transcriber, summarizer, "sk-test")

	result, err := svc.Process(context.Background(), models.ProcessRequest{
		URL:          "https://www.youtube.com/watch?v=ABC123&t=5s",
		SummaryWords: 300,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Video.ID != "ABC123" {
		t.Errorf("Video.ID = %q, want %q", result.Video.ID, "ABC123")
	}
	if result.EmbedURL != "https://www.youtube.com/embed/ABC123" {
		t.Errorf("EmbedURL = %q", result.EmbedURL)
	}
	if result.SummaryFile.Name != "youtube_summary_ABC123.txt" {
		t.Errorf("SummaryFile.Name = %q, want youtube_summary_ABC123.txt", result.SummaryFile.Name)
	}
	if result.TranscriptFile.Name != "youtube_transcript_ABC123.txt" {
		t.Errorf("TranscriptFile.Name = %q, want youtube_transcript_ABC123.txt", result.TranscriptFile.Name)
	}
	if result.SummaryFile.Content != "A short test video." {
		t.Errorf("SummaryFile.Content = %q", result.SummaryFile.Content)
	}
	if result.TranscriptFile.Content != transcriber.text {
		t.Errorf("TranscriptFile.Content = %q", result.TranscriptFile.Content)
	}

	wantPreview := []string{"Hello world...", "This is a test...", "Goodbye...."}
	if !reflect.DeepEqual(result.Stats.Preview, wantPreview) {
		t.Errorf("Stats.Preview = %#v, want %#v", result.Stats.Preview, wantPreview)
	}
	if result.Stats.WordCount != 7 {
		t.Errorf("Stats.WordCount = %d, want 7", result.Stats.WordCount)
	}
	if summarizer.gotWords != 300 {
		t.Errorf("summarizer received %d words, want 300", summarizer.gotWords)
	}
}

func TestProcessMissingCredentialSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{audio: []byte("audio")}
	transcriber := &fakeTranscriber{text: "text"}
	summarizer := &fakeSummarizer{summary: "summary"}
	svc := newTestService(fetcher, transcriber, summarizer, "")

	_, err := svc.Process(context.Background(), models.ProcessRequest{
		URL: "https://www.youtube.com/watch?v=ABC123",
	})
	if err == nil {
		t.Fatal("Process() succeeded without a credential")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *errors.AppError", err)
	}
	if !strings.Contains(appErr.Message, "API key") {
		t.Errorf("error message %q does not mention the API key", appErr.Message)
	}

	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
	if transcriber.calls != 0 || summarizer.calls != 0 {
		t.Error("downstream clients were invoked without a credential")
	}
}

func TestProcessInteractiveKeyAccepted(t *testing.T) {
	fetcher := &fakeFetcher{audio: []byte("audio")}
	transcriber := &fakeTranscriber{text: "text."}
	summarizer := &fakeSummarizer{summary: "sum"}
	svc := newTestService(fetcher, transcriber, summarizer, "")

	_, err := svc.Process(context.Background(), models.ProcessRequest{
		URL:    "https://www.youtube.com/watch?v=ABC123",
		APIKey: "sk-interactive",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
}

func TestProcessUnparseableURL(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher, &fakeTranscriber{}, &fakeSummarizer{}, "sk-test")

	_, err := svc.Process(context.Background(), models.ProcessRequest{
		URL: "https://www.youtube.com/feed/subscriptions",
	})
	if err == nil {
		t.Fatal("Process() accepted a URL without a video ID")
	}
	if fetcher.calls != 0 {
		t.Error("fetcher was invoked for an unparseable URL")
	}
}

func TestProcessFetchFailureAbortsPipeline(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.Internal("fetch", nil, "boom")}
	transcriber := &fakeTranscriber{}
	summarizer := &fakeSummarizer{}
	svc := newTestService(fetcher, transcriber, summarizer, "sk-test")

	_, err := svc.Process(context.Background(), models.ProcessRequest{
		URL: "https://www.youtube.com/watch?v=ABC123",
	})
	if err == nil {
		t.Fatal("Process() succeeded despite fetch failure")
	}
	if transcriber.calls != 0 || summarizer.calls != 0 {
		t.Error("pipeline continued past a failed fetch")
	}
}

func TestProcessSummaryWordsClamped(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "s"}
	svc := newTestService(
		&fakeFetcher{audio: []byte("a")},
		&fakeTranscriber{text: "t."},
		summarizer,
		"sk-test",
	)

	_, err := svc.Process(context.Background(), models.ProcessRequest{
		URL:          "https://www.youtube.com/watch?v=ABC123",
		SummaryWords: 9999,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summarizer.gotWords != 1000 {
		t.Errorf("summarizer received %d words, want 1000", summarizer.gotWords)
	}
}
