package classifier

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Lowercases and drops single letters",
			input:    "A Breaking Story",
			expected: []string{"breaking", "story"},
		},
		{
			name:     "Excludes stop words",
			input:    "the quick fox and the hound",
			expected: []string{"quick", "fox", "hound"},
		},
		{
			name:     "Keeps digits",
			input:    "covid19 vaccine",
			expected: []string{"covid19", "vaccine"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestVectorizerFitCapsVocabulary(t *testing.T) {
	docs := []string{
		"alpha alpha alpha beta beta gamma",
		"alpha beta delta",
	}

	v := NewVectorizer(2)
	v.Fit(docs)

	if v.FeatureCount() != 2 {
		t.Fatalf("FeatureCount() = %d, want 2", v.FeatureCount())
	}
	// alpha (4) and beta (3) outrank gamma and delta (1 each)
	for _, term := range []string{"alpha", "beta"} {
		if _, ok := v.Vocabulary[term]; !ok {
			t.Errorf("expected %q in vocabulary, got %v", term, v.Vocabulary)
		}
	}
}

func TestVectorizerFitBreaksTiesLexically(t *testing.T) {
	// zeta and apple both appear once; the cap admits only one extra term
	docs := []string{"common common zeta", "common apple"}

	v := NewVectorizer(2)
	v.Fit(docs)

	if _, ok := v.Vocabulary["apple"]; !ok {
		t.Errorf("tie should go to the lexically smaller term, vocabulary = %v", v.Vocabulary)
	}
	if _, ok := v.Vocabulary["zeta"]; ok {
		t.Errorf("zeta should have lost the tie, vocabulary = %v", v.Vocabulary)
	}
}

func TestVectorizerTransformIsL2Normalized(t *testing.T) {
	v := NewVectorizer(0)
	v.Fit([]string{
		"economy grows despite inflation fears",
		"markets rally after economy report",
	})

	row := v.Transform("economy inflation markets")
	if len(row) == 0 {
		t.Fatal("expected a non-empty row")
	}

	var sumSquares float64
	for _, val := range row {
		sumSquares += val * val
	}
	if math.Abs(sumSquares-1) > 1e-9 {
		t.Errorf("row norm squared = %v, want 1", sumSquares)
	}
}

func TestVectorizerTransformUnknownTerms(t *testing.T) {
	v := NewVectorizer(0)
	v.Fit([]string{"economy report"})

	if row := v.Transform("unrelated words entirely"); len(row) != 0 {
		t.Errorf("expected empty row for out-of-vocabulary text, got %v", row)
	}
}

func TestVectorizerTransformBeforeFit(t *testing.T) {
	v := NewVectorizer(0)
	if row := v.Transform("anything"); len(row) != 0 {
		t.Errorf("unfitted vectorizer should produce an empty row, got %v", row)
	}
}
