package validation

import (
	"strings"
	"unicode"
)

// TextThresholds defines configurable thresholds for judging whether a
// transcript line carries article prose or OCR debris
type TextThresholds struct {
	// Minimum rune count for a line to be worth keeping
	MinLineLength int

	// Minimum number of whitespace-separated tokens
	MinTokenCount int

	// Minimum share of letters among non-space runes
	MinAlphaRatio float64
}

// DefaultTextThresholds returns the default text thresholds
func DefaultTextThresholds() TextThresholds {
	return TextThresholds{
		MinLineLength: 10,
		MinTokenCount: 2,
		MinAlphaRatio: 0.5,
	}
}

// LineValidator scores individual transcript lines against the thresholds
type LineValidator struct {
	thresholds TextThresholds
}

// NewLineValidator creates a new line validator with default thresholds
func NewLineValidator() *LineValidator {
	return &LineValidator{
		thresholds: DefaultTextThresholds(),
	}
}

// NewLineValidatorWithThresholds creates a line validator with custom thresholds
func NewLineValidatorWithThresholds(thresholds TextThresholds) *LineValidator {
	return &LineValidator{
		thresholds: thresholds,
	}
}

// LineIssue represents a single failed check on a transcript line
type LineIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning"
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// AlphaRatio returns the share of letters among the non-space runes of line.
// An empty or all-space line has ratio 0.
func (lv *LineValidator) AlphaRatio(line string) float64 {
	var letters, total int
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}

// Evaluate runs every check against a line and reports the failures
func (lv *LineValidator) Evaluate(line string) []LineIssue {
	var issues []LineIssue

	trimmed := strings.TrimSpace(line)
	runes := len([]rune(trimmed))
	if runes < lv.thresholds.MinLineLength {
		issues = append(issues, LineIssue{
			Type:        "short_line",
			Message:     "Line is too short to carry article text.",
			Severity:    "error",
			ActualValue: float64(runes),
			Threshold:   float64(lv.thresholds.MinLineLength),
		})
	}

	tokens := len(strings.Fields(trimmed))
	if tokens < lv.thresholds.MinTokenCount {
		issues = append(issues, LineIssue{
			Type:        "sparse_tokens",
			Message:     "Line has too few words.",
			Severity:    "error",
			ActualValue: float64(tokens),
			Threshold:   float64(lv.thresholds.MinTokenCount),
		})
	}

	if ratio := lv.AlphaRatio(trimmed); ratio < lv.thresholds.MinAlphaRatio {
		issues = append(issues, LineIssue{
			Type:        "low_alpha_ratio",
			Message:     "Line is mostly digits or symbols.",
			Severity:    "error",
			ActualValue: ratio,
			Threshold:   lv.thresholds.MinAlphaRatio,
		})
	}

	return issues
}

// IsSubstantive reports whether a line passes every check
func (lv *LineValidator) IsSubstantive(line string) bool {
	return !lv.HasCriticalIssues(lv.Evaluate(line))
}

// HasCriticalIssues checks if there are any critical (error severity) issues
func (lv *LineValidator) HasCriticalIssues(issues []LineIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
