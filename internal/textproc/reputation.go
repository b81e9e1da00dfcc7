package textproc

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// Outlets shorter than this are matched exactly only; fuzzy matching on a
// three-letter name accepts too much.
const minFuzzyOutletLength = 5

// ReputationChecker flags documents that mention an established outlet.
// The signal is advisory: it feeds a response field, never the verdict.
// Matching is case-insensitive and tolerates one OCR misread per eight
// runes of the outlet name.
type ReputationChecker struct {
	outlets []string
}

// NewReputationChecker creates a checker over the given outlet names,
// which are expected in lowercase
func NewReputationChecker(outlets []string) *ReputationChecker {
	return &ReputationChecker{outlets: outlets}
}

// IsReputable reports whether any known outlet appears in the text
func (c *ReputationChecker) IsReputable(text string) bool {
	return c.MatchOutlet(text) != ""
}

// MatchOutlet returns the first outlet found in the text, or "" when none
// matches. An exact substring pass runs first, then a fuzzy pass over
// token windows of the same width as the outlet name.
func (c *ReputationChecker) MatchOutlet(text string) string {
	lower := strings.ToLower(text)

	for _, outlet := range c.outlets {
		if strings.Contains(lower, outlet) {
			return outlet
		}
	}

	tokens := strings.Fields(lower)
	for _, outlet := range c.outlets {
		if len([]rune(outlet)) < minFuzzyOutletLength {
			continue
		}
		if c.fuzzyContains(tokens, outlet) {
			return outlet
		}
	}
	return ""
}

// fuzzyContains slides a window of len(outlet words) tokens across the text
// and accepts a window within the edit-distance budget of the outlet name
func (c *ReputationChecker) fuzzyContains(tokens []string, outlet string) bool {
	width := len(strings.Fields(outlet))
	if width == 0 || len(tokens) < width {
		return false
	}
	budget := len([]rune(outlet)) / 8
	if budget < 1 {
		budget = 1
	}
	for i := 0; i+width <= len(tokens); i++ {
		window := strings.Join(tokens[i:i+width], " ")
		if levenshtein.Distance(window, outlet) <= budget {
			return true
		}
	}
	return false
}
