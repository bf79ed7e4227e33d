package models

import (
	"strings"
	"unicode/utf8"
)

const previewSentences = 3

// Stats holds the word and character counts for a transcript along with a
// short preview built from its opening sentences.
type Stats struct {
	WordCount int      `json:"word_count"`
	CharCount int      `json:"char_count"`
	Preview   []string `json:"preview"`
}

// ComputeStats derives transcript statistics. The preview takes the first
// three sentences, splitting on ". " and suffixing each with "...".
func ComputeStats(transcript string) Stats {
	sentences := strings.Split(transcript, ". ")
	if len(sentences) > previewSentences {
		sentences = sentences[:previewSentences]
	}

	preview := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		preview = append(preview, sentence+"...")
	}

	return Stats{
		WordCount: len(strings.Fields(transcript)),
		CharCount: utf8.RuneCountInString(transcript),
		Preview:   preview,
	}
}
