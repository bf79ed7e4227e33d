// Package downloader retrieves the best available audio-only stream for a
// video URL via yt-dlp.
package downloader

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"yt-brief/config"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var audioExtensions = []string{".m4a", ".mp3", ".webm", ".opus"}

// probeInfo is the subset of yt-dlp's --dump-single-json output we care
// about when checking availability before the transfer.
type probeInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

type Downloader struct {
	cfg     config.DownloadConfig
	tempDir string
	limiter *rate.Limiter
	log     *logrus.Logger
}

// New builds a Downloader. The limiter spaces consecutive downloads to stay
// under YouTube's rate limits; pass nil to disable.
func New(cfg config.DownloadConfig, tempDir string, limiter *rate.Limiter, log *logrus.Logger) *Downloader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Downloader{cfg: cfg, tempDir: tempDir, limiter: limiter, log: log}
}

// Install makes sure a yt-dlp binary is available, downloading one when the
// host has none. Meant to run once at startup.
func Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{})
	return err
}

// Fetch downloads the best available audio-only stream for url and returns
// its raw bytes together with the container extension (without the dot).
// All temporary files live in a scoped directory removed on every exit path.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	const op = "Downloader.Fetch"
	log := d.log.WithField("url", url)

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, "", newError(KindGeneric, op, "cancelled while waiting for download slot", err)
		}
	}

	if ctx != nil && d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	tempDir, err := os.MkdirTemp(d.tempDir, "yt-brief-*")
	if err != nil {
		return nil, "", newError(KindGeneric, op, "failed to create temp directory", err)
	}
	defer os.RemoveAll(tempDir)

	info, err := d.probe(ctx, url)
	if err != nil {
		log.WithError(err).Warn("Metadata probe failed")
		return nil, "", err
	}
	log.WithFields(logrus.Fields{
		"video_id": info.ID,
		"title":    info.Title,
		"duration": info.Duration,
	}).Info("Probe succeeded, starting audio download")

	dl := ytdlp.New().
		Format(d.cfg.Format).
		Output(filepath.Join(tempDir, "audio.%(ext)s")).
		NoPlaylist().
		NoWarnings().
		Quiet().
		UserAgent(d.cfg.UserAgent).
		SleepInterval(d.cfg.SleepInterval.Seconds()).
		MaxSleepInterval(d.cfg.MaxSleepInterval.Seconds())

	res, err := dl.Run(ctx, url)
	if err != nil {
		var stderr string
		if res != nil {
			stderr = res.Stderr
		}
		dlErr := classifyTransfer(op, err, stderr)
		log.WithError(err).WithField("kind", dlErr.Kind.String()).Error("Audio download failed")
		return nil, "", dlErr
	}

	path, ext, err := firstAudioFile(tempDir)
	if err != nil {
		log.WithError(err).Error("No audio file produced by download")
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", newError(KindGeneric, op, "failed to read downloaded audio", err)
	}

	log.WithFields(logrus.Fields{"ext": ext, "bytes": len(data)}).Info("Audio download completed")
	return data, ext, nil
}

// probe asks yt-dlp for metadata only, failing fast when the video yields
// nothing usable before any transfer is attempted.
func (d *Downloader) probe(ctx context.Context, url string) (*probeInfo, error) {
	const op = "Downloader.probe"

	cmd := ytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		NoPlaylist().
		NoWarnings().
		UserAgent(d.cfg.UserAgent)

	res, err := cmd.Run(ctx, url)
	if err != nil {
		var stderr string
		if res != nil {
			stderr = res.Stderr
		}
		if blocked := classifyTransfer(op, err, stderr); blocked.Kind == KindBlocked {
			return nil, blocked
		}
		return nil, newError(KindProbe, op, "could not extract video information", err)
	}

	var info probeInfo
	if err := json.Unmarshal([]byte(res.Stdout), &info); err != nil || info.ID == "" {
		return nil, newError(KindProbe, op, "video metadata was empty or unreadable", err)
	}
	return &info, nil
}

// firstAudioFile scans dir for the first file carrying a known audio
// extension. yt-dlp picks the final extension itself, so the scan is how we
// learn the container it settled on.
func firstAudioFile(dir string) (string, string, error) {
	const op = "Downloader.firstAudioFile"

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", newError(KindGeneric, op, "failed to scan download directory", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, known := range audioExtensions {
			if ext == known {
				return filepath.Join(dir, entry.Name()), strings.TrimPrefix(ext, "."), nil
			}
		}
	}

	return "", "", newError(KindNoData, op, "download produced no audio file", nil)
}
