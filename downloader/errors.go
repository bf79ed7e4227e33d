package downloader

import (
	"fmt"
	"strings"
)

// Kind classifies download failures so callers can branch on the failure
// class instead of sniffing rendered error text.
type Kind int

const (
	// KindGeneric covers transport and extractor failures with no more
	// specific classification.
	KindGeneric Kind = iota
	// KindProbe means the metadata probe returned nothing usable.
	KindProbe
	// KindBlocked means YouTube refused the transfer: age restriction,
	// region lock, sign-in requirement or anti-bot measures.
	KindBlocked
	// KindNoData means the transfer finished but no audio file was produced.
	KindNoData
)

func (k Kind) String() string {
	switch k {
	case KindProbe:
		return "probe"
	case KindBlocked:
		return "blocked"
	case KindNoData:
		return "no_data"
	default:
		return "generic"
	}
}

// Error is the structured failure returned by the download layer.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// Markers yt-dlp emits on its stderr when YouTube refuses a transfer. The
// subprocess boundary flattens the HTTP status into this output, so the
// classification lives here and nowhere else.
var blockedMarkers = []string{
	"HTTP Error 403",
	"403: Forbidden",
	"Sign in to confirm",
	"age-restricted",
	"not available in your country",
	"confirm you're not a bot",
}

func classifyTransfer(op string, err error, stderr string) *Error {
	combined := stderr
	if err != nil {
		combined += "\n" + err.Error()
	}
	for _, marker := range blockedMarkers {
		if strings.Contains(combined, marker) {
			return newError(KindBlocked, op,
				"YouTube refused the download (age restriction, region lock, sign-in requirement or anti-bot blocking)", err)
		}
	}
	return newError(KindGeneric, op, "audio download failed", err)
}
