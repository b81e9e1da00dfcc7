package textproc

import (
	"strings"
	"testing"
)

const frontPageTranscript = `THE DAILY HERALD
MONDAY, AUGUST 25, 2010
$1.50
HIGH 72 LOW 54
www.dailyherald.com
SPORTS
Senate passes sweeping budget reform after marathon session
Mayor unveils new transit plan for downtown corridor
© 2010 Daily Herald Inc. All rights reserved`

func TestFilterDropsPageFurniture(t *testing.T) {
	f := NewArtifactFilter(DefaultRules())

	kept := f.FilterLines(frontPageTranscript)

	want := []string{
		"THE DAILY HERALD",
		"Senate passes sweeping budget reform after marathon session",
		"Mayor unveils new transit plan for downtown corridor",
	}
	if len(kept) != len(want) {
		t.Fatalf("Expected %d surviving lines, got %d: %q", len(want), len(kept), kept)
	}
	for i := range want {
		if kept[i] != want[i] {
			t.Errorf("Line %d: got %q, want %q", i, kept[i], want[i])
		}
	}
}

func TestFilterDiscardsByCategory(t *testing.T) {
	f := NewArtifactFilter(DefaultRules())

	tests := []struct {
		name string
		line string
	}{
		{"weekday dateline", "MONDAY, AUGUST 25, 2010"},
		{"month date", "AUGUST 25, 2010"},
		{"slash date", "08/25/2010 Edition"},
		{"price", "$1.50"},
		{"bare number", "75"},
		{"weather box", "HIGH 72 LOW 54"},
		{"temperature symbol", "Partly cloudy, 72°F tonight"},
		{"website", "www.dailyherald.com"},
		{"section label", "SPORTS"},
		{"lone uppercase word", "CLASSIFIEDS"},
		{"copyright", "© 2010 Daily Herald Inc. All rights reserved"},
		{"ocr debris", "~~ ||| 3f 9 ::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if kept := f.FilterLines(tt.line); len(kept) != 0 {
				t.Errorf("Expected %q to be discarded, got %q", tt.line, kept)
			}
		})
	}
}

func TestFilterKeepsArticleProse(t *testing.T) {
	f := NewArtifactFilter(DefaultRules())

	lines := []string{
		"Senate passes sweeping budget reform after marathon session",
		"Monday's hearing continued despite the walkout",
		"Highway crash closes two lanes near the bridge",
		"Brain surgery breakthrough announced by researchers",
	}

	for _, line := range lines {
		if kept := f.FilterLines(line); len(kept) != 1 {
			t.Errorf("Expected %q to survive, got %q", line, kept)
		}
	}
}

func TestFilterJoinsWithSentenceBreaks(t *testing.T) {
	f := NewArtifactFilter(DefaultRules())

	got := f.Filter("First headline stands alone here\nSecond headline follows the first")
	want := "First headline stands alone here. Second headline follows the first"
	if got != want {
		t.Errorf("Filter join = %q, want %q", got, want)
	}
}

func TestFilterFallsBackToRawTranscript(t *testing.T) {
	f := NewArtifactFilter(DefaultRules())

	raw := "SPORTS\n$1.50\n08/25/2010"
	got := f.Filter(raw)
	if got != raw {
		t.Errorf("Expected raw transcript fallback, got %q", got)
	}

	if got := f.Filter(""); got != "" {
		t.Errorf("Expected empty output for empty transcript, got %q", got)
	}
}

func TestFilterNeverPanicsOnHostileInput(t *testing.T) {
	f := NewArtifactFilter(DefaultRules())

	inputs := []string{
		strings.Repeat("A", 1<<16),
		"\x00\x01\x02",
		strings.Repeat("\n", 1000),
		"only one line without a break",
	}
	for _, input := range inputs {
		_ = f.Filter(input)
	}
}
