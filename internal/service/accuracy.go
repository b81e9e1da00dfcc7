package service

import (
	"strings"

	"github.com/arbovm/levenshtein"

	"github.com/newslens/news-inspector-go/pkg/models"
)

// transcriptAccuracy compares a transcript against caller-supplied ground
// truth: word error rate, character error rate, and a 0-1 similarity score.
// Returns nil when no ground truth was supplied. Both texts are compared
// case-insensitively since OCR casing is unreliable.
func transcriptAccuracy(extracted, expected string) *models.OCRAccuracy {
	expectedNorm := strings.ToLower(strings.TrimSpace(expected))
	if expectedNorm == "" {
		return nil
	}
	extractedNorm := strings.ToLower(strings.TrimSpace(extracted))

	dist := levenshtein.Distance(extractedNorm, expectedNorm)

	cer := 1.0
	if n := len([]rune(expectedNorm)); n > 0 {
		cer = float64(dist) / float64(n)
	}

	match := 1.0
	if maxLen := maxInt(len([]rune(extractedNorm)), len([]rune(expectedNorm))); maxLen > 0 {
		match = 1 - float64(dist)/float64(maxLen)
		if match < 0 {
			match = 0
		}
	}

	return &models.OCRAccuracy{
		ExpectedText: expected,
		WER:          wordErrorRate(strings.Fields(expectedNorm), strings.Fields(extractedNorm)),
		CER:          cer,
		MatchScore:   match,
	}
}

// wordErrorRate is the word-level edit distance between reference and
// hypothesis divided by the reference length
func wordErrorRate(ref, hyp []string) float64 {
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 1
	}

	prev := make([]int, len(hyp)+1)
	curr := make([]int, len(hyp)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ref); i++ {
		curr[0] = i
		for j := 1; j <= len(hyp); j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return float64(prev[len(hyp)]) / float64(len(ref))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
