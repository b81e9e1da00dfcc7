package textproc

import (
	"regexp"
	"strings"

	"github.com/newslens/news-inspector-go/pkg/validation"
)

var (
	// AUGUST 25, 2010
	monthDatePattern = regexp.MustCompile(`^[A-Z]+\s+\d{1,2},\s+\d{4}`)
	// 08/25/2010
	slashDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}`)
	// $1.50, 75, 2.00
	priceLinePattern = regexp.MustCompile(`^\$?\d+\.?\d*\s*$`)
)

// ArtifactFilter drops the lines of an OCR transcript that belong to the
// page furniture of a printed front page rather than to article prose:
// date lines, prices, weather boxes, section labels, web addresses,
// copyright footers. It works line by line and never fails; when every line is
// rejected the raw transcript is returned so the classifier still has the
// strongest available signal.
type ArtifactFilter struct {
	rules  Rules
	labels map[string]struct{}
	lines  *validation.LineValidator
}

// NewArtifactFilter creates a filter driven by the given rule tables
func NewArtifactFilter(rules Rules) *ArtifactFilter {
	labels := make(map[string]struct{}, len(rules.SectionLabels))
	for _, label := range rules.SectionLabels {
		labels[strings.ToUpper(label)] = struct{}{}
	}
	return &ArtifactFilter{
		rules:  rules,
		labels: labels,
		lines:  validation.NewLineValidatorWithThresholds(rules.TextThresholds()),
	}
}

// Filter removes artifact lines and joins the survivors into one passage,
// preserving the original line order
func (f *ArtifactFilter) Filter(transcript string) string {
	kept := f.FilterLines(transcript)
	if len(kept) == 0 {
		// Nothing survived. A transcript of pure furniture is still more
		// signal than an empty string, so fall back to the raw text.
		return strings.TrimSpace(transcript)
	}
	return strings.Join(kept, ". ")
}

// FilterLines returns the surviving lines individually, in input order
func (f *ArtifactFilter) FilterLines(transcript string) []string {
	var kept []string
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if f.isArtifact(line) {
			continue
		}
		if !f.lines.IsSubstantive(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// isArtifact applies the rule tables to a single trimmed line
func (f *ArtifactFilter) isArtifact(line string) bool {
	upper := strings.ToUpper(line)
	tokens := strings.Fields(line)

	// Date lines: weekday prefixes and both printed date shapes. The prefix
	// check runs against the raw line, so only uppercase-printed datelines
	// match; prose such as "Monday's hearing continued" survives.
	for _, day := range f.rules.Weekdays {
		if strings.HasPrefix(line, day) {
			return true
		}
	}
	if monthDatePattern.MatchString(line) || slashDatePattern.MatchString(line) {
		return true
	}

	// Newsstand price lines
	if priceLinePattern.MatchString(line) {
		return true
	}

	// Weather box vocabulary
	if matchesWeatherTerm(upper, tokens, f.rules.WeatherTerms) {
		return true
	}

	// Web addresses printed as their own line
	if len(tokens) <= f.rules.Thresholds.MaxDomainTokens {
		for _, suffix := range f.rules.DomainSuffixes {
			if strings.Contains(upper, suffix) {
				return true
			}
		}
	}

	// Section labels: either the explicit table or any lone uppercase word
	if _, ok := f.labels[upper]; ok {
		return true
	}
	if len(tokens) == 1 && line == upper && hasLetter(line) &&
		len([]rune(line)) < f.rules.Thresholds.MaxLabelLength {
		return true
	}

	// Copyright footers
	if strings.Contains(upper, "©") || strings.Contains(upper, "COPYRIGHT") ||
		strings.Contains(upper, "ALL RIGHTS RESERVED") {
		return true
	}

	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func isWordTerm(term string) bool {
	for _, r := range term {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// matchesWeatherTerm decides whether a line belongs to a forecast box.
// Short word terms must stand alone as tokens, so headlines containing
// HIGHWAY or BRAIN are not mistaken for weather; longer terms and symbols
// (°F) match anywhere, which also covers plurals like SHOWERS.
func matchesWeatherTerm(upper string, tokens []string, terms []string) bool {
	for _, term := range terms {
		if isWordTerm(term) && len(term) <= 4 {
			if containsToken(tokens, term) {
				return true
			}
		} else if strings.Contains(upper, term) {
			return true
		}
	}
	return false
}

// containsToken reports whether any token, uppercased and stripped of edge
// punctuation, equals the term
func containsToken(tokens []string, term string) bool {
	for _, token := range tokens {
		token = strings.ToUpper(strings.Trim(token, ".,:;!?()\"'"))
		if token == term {
			return true
		}
	}
	return false
}
