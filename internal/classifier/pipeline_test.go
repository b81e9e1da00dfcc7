package classifier

import (
	"bytes"
	"testing"
	"time"

	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/pkg/models"
)

// fitTestPipeline trains a small but unambiguous pipeline: fabricated
// samples share one vocabulary, genuine samples another.
func fitTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	fake := []string{
		"shocking miracle cure doctors hate this secret trick",
		"aliens secretly control the government miracle conspiracy",
		"celebrity secret scandal shocking hidden truth exposed",
		"miracle weight loss trick doctors conspiracy secret",
	}
	real := []string{
		"scientists discover breakthrough in renewable energy research",
		"parliament passed the budget after lengthy debate",
		"researchers publish study on renewable energy efficiency",
		"central bank holds interest rates steady this quarter",
	}

	docs := append(append([]string{}, fake...), real...)
	labels := make([]int, 0, len(docs))
	for range fake {
		labels = append(labels, ClassFake)
	}
	for range real {
		labels = append(labels, ClassReal)
	}

	v := NewVectorizer(0)
	v.Fit(docs)

	rows := make([]TermVector, len(docs))
	for i, doc := range docs {
		rows[i] = v.Transform(doc)
	}

	m := NewModel()
	opts := DefaultFitOptions(v.FeatureCount())
	opts.MaxEpochs = 500
	m.Fit(rows, labels, opts)

	return NewPipeline(v, m, Metadata{TrainedAt: time.Now(), TrainSamples: len(docs)})
}

func TestPipelineClassify(t *testing.T) {
	p := fitTestPipeline(t)

	tests := []struct {
		name     string
		text     string
		expected models.Label
	}{
		{
			name:     "Genuine science reporting",
			text:     "scientists discover breakthrough in renewable energy",
			expected: models.LabelReal,
		},
		{
			name:     "Fabricated miracle cure",
			text:     "shocking secret miracle cure doctors hate",
			expected: models.LabelFake,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, confidence, err := p.Classify(tt.text)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if label != tt.expected {
				t.Errorf("label = %v, want %v", label, tt.expected)
			}
			if confidence <= 50 || confidence > 100 {
				t.Errorf("confidence = %v, want in (50, 100]", confidence)
			}
		})
	}
}

func TestPipelineClassifyIsDeterministic(t *testing.T) {
	p := fitTestPipeline(t)

	text := "parliament passed the budget after debate"
	label1, conf1, err := p.Classify(text)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	label2, conf2, err := p.Classify(text)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label1 != label2 || conf1 != conf2 {
		t.Errorf("repeated classification diverged: (%v, %v) vs (%v, %v)", label1, conf1, label2, conf2)
	}
}

func TestPipelineClassifyUnfitted(t *testing.T) {
	p := NewPipeline(NewVectorizer(0), NewModel(), Metadata{})

	_, _, err := p.Classify("anything at all")
	if err == nil {
		t.Fatal("expected an error from an unfitted pipeline")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFitted) {
		t.Errorf("error type = %v, want not_fitted", err)
	}
}

// A document sharing no vocabulary with the training corpus lands on the
// model's bias alone; the verdict must still be a valid label with a
// confidence of at least 50.
func TestPipelineClassifyOutOfVocabulary(t *testing.T) {
	p := fitTestPipeline(t)

	label, confidence, err := p.Classify("zzz qqq xxx")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != models.LabelFake && label != models.LabelReal {
		t.Errorf("label = %v, want FAKE or REAL", label)
	}
	if confidence < 50 || confidence > 100 {
		t.Errorf("confidence = %v, want in [50, 100]", confidence)
	}
}

func TestPipelineEncodeDecodeRoundTrip(t *testing.T) {
	p := fitTestPipeline(t)

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	loaded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	texts := []string{
		"scientists discover breakthrough in renewable energy",
		"shocking secret miracle cure",
		"central bank holds interest rates steady",
	}
	for _, text := range texts {
		wantLabel, wantConf, err := p.Classify(text)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		gotLabel, gotConf, err := loaded.Classify(text)
		if err != nil {
			t.Fatalf("loaded Classify() error = %v", err)
		}
		if gotLabel != wantLabel || gotConf != wantConf {
			t.Errorf("round trip diverged for %q: (%v, %v) vs (%v, %v)",
				text, gotLabel, gotConf, wantLabel, wantConf)
		}
	}
}

func TestPipelineEncodeUnfitted(t *testing.T) {
	p := NewPipeline(NewVectorizer(0), NewModel(), Metadata{})

	var buf bytes.Buffer
	if err := p.Encode(&buf); err == nil {
		t.Fatal("expected Encode to refuse an unfitted pipeline")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not a gzip stream"))); err == nil {
		t.Fatal("expected an error for a corrupt artifact")
	}
}
