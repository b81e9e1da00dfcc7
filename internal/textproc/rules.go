package textproc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/newslens/news-inspector-go/pkg/validation"
)

// Rules holds the vocabulary tables and thresholds that drive transcript
// filtering. Every list is data, not code, so deployments can override the
// defaults from a YAML file without a rebuild.
type Rules struct {
	Weekdays         []string       `yaml:"weekdays"`
	WeatherTerms     []string       `yaml:"weather_terms"`
	SectionLabels    []string       `yaml:"section_labels"`
	DomainSuffixes   []string       `yaml:"domain_suffixes"`
	OutletMarkers    []string       `yaml:"outlet_markers"`
	ReputableOutlets []string       `yaml:"reputable_outlets"`
	Thresholds       RuleThresholds `yaml:"thresholds"`
}

// RuleThresholds mirrors validation.TextThresholds plus the artifact-specific
// limits that have no meaning outside this package
type RuleThresholds struct {
	MinLineLength   int     `yaml:"min_line_length"`
	MinTokenCount   int     `yaml:"min_token_count"`
	MinAlphaRatio   float64 `yaml:"min_alpha_ratio"`
	MaxLabelLength  int     `yaml:"max_label_length"`
	MaxDomainTokens int     `yaml:"max_domain_tokens"`
}

// DefaultRules returns the built-in rule tables
func DefaultRules() Rules {
	return Rules{
		Weekdays: []string{
			"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
		},
		WeatherTerms: []string{
			"HIGH", "LOW", "SHOWER", "RAIN", "SUNNY", "CLOUDY", "TEMPERATURE", "°F", "°C",
		},
		SectionLabels: []string{
			"SPORTS", "CLASSIFIEDS", "ECONOMY", "POLITICS", "BUSINESS",
			"OPINION", "WEATHER", "OBITUARIES", "INDEX", "LOCAL", "NATION", "WORLD",
		},
		DomainSuffixes: []string{
			".COM", ".ORG", ".NET", ".GOV", ".EDU",
		},
		OutletMarkers: []string{
			"TIMES", "POST", "NEWS", "JOURNAL", "TRIBUNE", "HERALD", "GAZETTE", "OBSERVER",
		},
		ReputableOutlets: []string{
			"reuters", "associated press", "bbc news", "the new york times",
			"the washington post", "the wall street journal", "the guardian",
			"npr", "cnn", "abc news", "cbs news", "nbc news", "usa today",
			"los angeles times", "chicago tribune", "boston globe",
		},
		Thresholds: RuleThresholds{
			MinLineLength:   10,
			MinTokenCount:   2,
			MinAlphaRatio:   0.5,
			MaxLabelLength:  20,
			MaxDomainTokens: 2,
		},
	}
}

// LoadRules returns the defaults overlaid with any values present in the
// YAML file at path. An empty path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}

	var overlay Rules
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return rules, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	applyOverlay(&rules, overlay)
	return rules, nil
}

// applyOverlay replaces each default table with the file's version when the
// file actually provides one. Absent lists and zero thresholds keep defaults.
func applyOverlay(rules *Rules, overlay Rules) {
	if len(overlay.Weekdays) > 0 {
		rules.Weekdays = overlay.Weekdays
	}
	if len(overlay.WeatherTerms) > 0 {
		rules.WeatherTerms = overlay.WeatherTerms
	}
	if len(overlay.SectionLabels) > 0 {
		rules.SectionLabels = overlay.SectionLabels
	}
	if len(overlay.DomainSuffixes) > 0 {
		rules.DomainSuffixes = overlay.DomainSuffixes
	}
	if len(overlay.OutletMarkers) > 0 {
		rules.OutletMarkers = overlay.OutletMarkers
	}
	if len(overlay.ReputableOutlets) > 0 {
		rules.ReputableOutlets = overlay.ReputableOutlets
	}
	if overlay.Thresholds.MinLineLength > 0 {
		rules.Thresholds.MinLineLength = overlay.Thresholds.MinLineLength
	}
	if overlay.Thresholds.MinTokenCount > 0 {
		rules.Thresholds.MinTokenCount = overlay.Thresholds.MinTokenCount
	}
	if overlay.Thresholds.MinAlphaRatio > 0 {
		rules.Thresholds.MinAlphaRatio = overlay.Thresholds.MinAlphaRatio
	}
	if overlay.Thresholds.MaxLabelLength > 0 {
		rules.Thresholds.MaxLabelLength = overlay.Thresholds.MaxLabelLength
	}
	if overlay.Thresholds.MaxDomainTokens > 0 {
		rules.Thresholds.MaxDomainTokens = overlay.Thresholds.MaxDomainTokens
	}
}

// TextThresholds converts the line-level limits into the validation package's
// threshold type
func (r Rules) TextThresholds() validation.TextThresholds {
	return validation.TextThresholds{
		MinLineLength: r.Thresholds.MinLineLength,
		MinTokenCount: r.Thresholds.MinTokenCount,
		MinAlphaRatio: r.Thresholds.MinAlphaRatio,
	}
}
