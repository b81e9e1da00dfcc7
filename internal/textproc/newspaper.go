package textproc

import (
	"strings"

	"github.com/newslens/news-inspector-go/pkg/models"
)

const maxOutletTokens = 6

// StructureAnalyzer describes the recognizable layout of a scanned front
// page: masthead, datelines, headline candidates, section labels, weather
// box, printed web addresses. Purely descriptive; it never influences the
// verdict.
type StructureAnalyzer struct {
	rules Rules
}

// NewStructureAnalyzer creates an analyzer driven by the given rule tables
func NewStructureAnalyzer(rules Rules) *StructureAnalyzer {
	return &StructureAnalyzer{rules: rules}
}

// Summarize walks the raw transcript line by line and buckets what it can
// recognize. Returns nil when nothing was recognized.
func (a *StructureAnalyzer) Summarize(transcript string) *models.NewspaperStructure {
	var s models.NewspaperStructure
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		a.bucket(&s, line)
	}
	if isEmptyStructure(&s) {
		return nil
	}
	return &s
}

func (a *StructureAnalyzer) bucket(s *models.NewspaperStructure, line string) {
	upper := strings.ToUpper(line)
	tokens := strings.Fields(line)

	// Masthead: a short line naming the outlet, first match wins
	if s.Outlet == "" && len(tokens) <= maxOutletTokens {
		for _, marker := range a.rules.OutletMarkers {
			if containsToken(tokens, marker) {
				s.Outlet = line
				return
			}
		}
	}

	if monthDatePattern.MatchString(line) || slashDatePattern.MatchString(line) {
		s.Dates = append(s.Dates, line)
		return
	}
	for _, day := range a.rules.Weekdays {
		if strings.HasPrefix(line, day) {
			s.Dates = append(s.Dates, line)
			return
		}
	}

	if matchesWeatherTerm(upper, tokens, a.rules.WeatherTerms) {
		s.WeatherLines = append(s.WeatherLines, line)
		return
	}

	for _, suffix := range a.rules.DomainSuffixes {
		if strings.Contains(upper, suffix) {
			s.Websites = append(s.Websites, line)
			return
		}
	}

	if _, ok := labelLookup(a.rules.SectionLabels, upper); ok {
		s.SectionLabels = append(s.SectionLabels, line)
		return
	}
	if len(tokens) == 1 && line == upper && hasLetter(line) &&
		len([]rune(line)) < a.rules.Thresholds.MaxLabelLength {
		s.SectionLabels = append(s.SectionLabels, line)
		return
	}

	// Long all-caps lines read like headlines
	if line == upper && hasLetter(line) && len([]rune(line)) >= a.rules.Thresholds.MaxLabelLength {
		s.HeadlineCandidates = append(s.HeadlineCandidates, line)
	}
}

func labelLookup(labels []string, upper string) (string, bool) {
	for _, label := range labels {
		if strings.ToUpper(label) == upper {
			return label, true
		}
	}
	return "", false
}

func isEmptyStructure(s *models.NewspaperStructure) bool {
	return s.Outlet == "" && len(s.Dates) == 0 && len(s.HeadlineCandidates) == 0 &&
		len(s.SectionLabels) == 0 && len(s.WeatherLines) == 0 && len(s.Websites) == 0
}
