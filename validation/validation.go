package validation

import (
	"net/url"
	"strings"

	"yt-brief/config"
	"yt-brief/errors"
)

type Validator struct {
	config *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// ValidateURL performs URL validation
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	if strings.TrimSpace(urlStr) == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	// Protocol validation
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	// Domain validation
	host := parsedURL.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}

// ValidateSummaryWords clamps a requested summary length into the configured
// bounds, snapping to the configured step. Zero means "use the default".
func (v *Validator) ValidateSummaryWords(words int) int {
	o := v.config.OpenAI
	if words == 0 {
		return o.DefaultSummaryWords
	}
	if words < o.MinSummaryWords {
		return o.MinSummaryWords
	}
	if words > o.MaxSummaryWords {
		return o.MaxSummaryWords
	}
	if o.SummaryWordsStep > 1 {
		words -= (words - o.MinSummaryWords) % o.SummaryWordsStep
	}
	return words
}
