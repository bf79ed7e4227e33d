package downloader

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyTransfer(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		stderr   string
		wantKind Kind
	}{
		{
			name:     "HTTP 403 on stderr",
			err:      fmt.Errorf("exit status 1"),
			stderr:   "ERROR: unable to download video data: HTTP Error 403: Forbidden",
			wantKind: KindBlocked,
		},
		{
			name:     "Sign-in requirement",
			err:      fmt.Errorf("exit status 1"),
			stderr:   "ERROR: Sign in to confirm your age",
			wantKind: KindBlocked,
		},
		{
			name:     "Anti-bot check",
			err:      fmt.Errorf("exit status 1"),
			stderr:   "ERROR: please confirm you're not a bot",
			wantKind: KindBlocked,
		},
		{
			name:     "Forbidden in error message",
			err:      fmt.Errorf("yt-dlp failed: 403: Forbidden"),
			stderr:   "",
			wantKind: KindBlocked,
		},
		{
			name:     "Generic network failure",
			err:      fmt.Errorf("exit status 1"),
			stderr:   "ERROR: unable to download video data: timed out",
			wantKind: KindGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransfer("op", tt.err, tt.stderr)
			if got.Kind != tt.wantKind {
				t.Errorf("classifyTransfer kind = %v, want %v", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestBlockedDiagnosticIsDistinct(t *testing.T) {
	blocked := classifyTransfer("op", fmt.Errorf("exit status 1"), "HTTP Error 403")
	generic := classifyTransfer("op", fmt.Errorf("exit status 1"), "timed out")

	if blocked.Message == generic.Message {
		t.Error("blocked and generic failures share the same diagnostic")
	}
	if blocked.Kind != KindBlocked {
		t.Errorf("blocked kind = %v, want %v", blocked.Kind, KindBlocked)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := newError(KindGeneric, "op", "failed", inner)
	if !stderrors.Is(err, inner) {
		t.Error("errors.Is did not find the wrapped error")
	}

	var dlErr *Error
	if !stderrors.As(error(err), &dlErr) {
		t.Fatal("errors.As did not match *Error")
	}
	if dlErr.Kind != KindGeneric {
		t.Errorf("Kind = %v, want %v", dlErr.Kind, KindGeneric)
	}
}

func TestFirstAudioFile(t *testing.T) {
	t.Run("Finds known audio extension", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"notes.txt", "audio.m4a"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		path, ext, err := firstAudioFile(dir)
		if err != nil {
			t.Fatalf("firstAudioFile error = %v", err)
		}
		if filepath.Base(path) != "audio.m4a" {
			t.Errorf("path = %q, want audio.m4a", path)
		}
		if ext != "m4a" {
			t.Errorf("ext = %q, want m4a", ext)
		}
	})

	t.Run("No audio file reports no data", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, _, err := firstAudioFile(dir)
		var dlErr *Error
		if !stderrors.As(err, &dlErr) {
			t.Fatalf("error type = %T, want *Error", err)
		}
		if dlErr.Kind != KindNoData {
			t.Errorf("Kind = %v, want %v", dlErr.Kind, KindNoData)
		}
	})
}
