package training

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/newslens/news-inspector-go/internal/classifier"
	"github.com/newslens/news-inspector-go/internal/logger"
	"github.com/newslens/news-inspector-go/internal/repository"
	"github.com/newslens/news-inspector-go/internal/textproc"
)

// Options configure one training run
type Options struct {
	FakePath    string
	RealPath    string
	OutputPath  string
	MaxFeatures int
	MaxEpochs   int
	Seed        int64
}

// DefaultOptions returns the training defaults used for the published model
func DefaultOptions() Options {
	return Options{
		MaxFeatures: 50000,
		MaxEpochs:   300,
		Seed:        42,
	}
}

// Report holds the held-out evaluation of a training run. Precision, recall
// and F1 treat the fabricated class as positive.
type Report struct {
	TrainSamples int
	TestSamples  int
	Accuracy     float64
	Precision    float64
	Recall       float64
	F1           float64
	Epochs       int
	Converged    bool
}

// Run loads both corpora, trains a pipeline and persists it to
// opts.OutputPath. Nothing is written when any stage fails.
func Run(opts Options) (*Report, error) {
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = DefaultOptions().MaxFeatures
	}
	if opts.MaxEpochs <= 0 {
		opts.MaxEpochs = DefaultOptions().MaxEpochs
	}

	fake, real, err := LoadCorpora(opts.FakePath, opts.RealPath)
	if err != nil {
		return nil, err
	}

	docs, labels := buildDataset(fake, real)
	if len(docs) < 2 {
		return nil, fmt.Errorf("need at least 2 usable documents, have %d", len(docs))
	}
	shuffle(docs, labels, opts.Seed)

	trainDocs, trainLabels, testDocs, testLabels := split(docs, labels)

	log := logger.WithComponent("training")
	log.WithFields(map[string]interface{}{
		"train_samples": len(trainDocs),
		"test_samples":  len(testDocs),
	}).Info("Dataset prepared")

	vectorizer := classifier.NewVectorizer(opts.MaxFeatures)
	vectorizer.Fit(trainDocs)

	trainRows := make([]classifier.TermVector, len(trainDocs))
	for i, doc := range trainDocs {
		trainRows[i] = vectorizer.Transform(doc)
	}

	fitOpts := classifier.DefaultFitOptions(vectorizer.FeatureCount())
	fitOpts.MaxEpochs = opts.MaxEpochs
	model := classifier.NewModel()
	summary := model.Fit(trainRows, trainLabels, fitOpts)

	report := evaluate(vectorizer, model, testDocs, testLabels)
	report.TrainSamples = len(trainDocs)
	report.TestSamples = len(testDocs)
	report.Epochs = summary.Epochs
	report.Converged = summary.Converged

	pipeline := classifier.NewPipeline(vectorizer, model, classifier.Metadata{
		TrainedAt:    time.Now().UTC(),
		TrainSamples: len(trainDocs),
	})

	if err := repository.NewFileModelRepository(opts.OutputPath).Save(pipeline); err != nil {
		return nil, fmt.Errorf("persist model: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"accuracy": report.Accuracy,
		"f1":       report.F1,
		"epochs":   report.Epochs,
		"output":   opts.OutputPath,
	}).Info("Training complete")

	return report, nil
}

// buildDataset normalizes every document with the same normalizer the
// serving path uses, and drops rows with nothing left
func buildDataset(fake, real []string) ([]string, []int) {
	normalizer := textproc.NewNormalizer()

	docs := make([]string, 0, len(fake)+len(real))
	labels := make([]int, 0, len(fake)+len(real))
	add := func(texts []string, label int) {
		for _, text := range texts {
			normalized := normalizer.Normalize(text)
			if normalized == "" {
				continue
			}
			docs = append(docs, normalized)
			labels = append(labels, label)
		}
	}
	add(fake, classifier.ClassFake)
	add(real, classifier.ClassReal)
	return docs, labels
}

// shuffle permutes documents and labels in lockstep. The seed is fixed by
// the caller so runs are reproducible.
func shuffle(docs []string, labels []int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(docs), func(i, j int) {
		docs[i], docs[j] = docs[j], docs[i]
		labels[i], labels[j] = labels[j], labels[i]
	})
}

// split reserves the final 20% of the shuffled dataset for evaluation,
// keeping at least one row on each side
func split(docs []string, labels []int) ([]string, []int, []string, []int) {
	cut := len(docs) * 8 / 10
	if cut == len(docs) {
		cut = len(docs) - 1
	}
	if cut == 0 {
		cut = 1
	}
	return docs[:cut], labels[:cut], docs[cut:], labels[cut:]
}

// evaluate scores the fitted stages on held-out rows, treating the
// fabricated class as positive
func evaluate(vectorizer *classifier.Vectorizer, model *classifier.Model, docs []string, labels []int) *Report {
	var tp, fp, fn, correct int
	for i, doc := range docs {
		predicted := classifier.ClassFake
		if model.Proba(vectorizer.Transform(doc)) > 0.5 {
			predicted = classifier.ClassReal
		}

		if predicted == labels[i] {
			correct++
		}
		switch {
		case predicted == classifier.ClassFake && labels[i] == classifier.ClassFake:
			tp++
		case predicted == classifier.ClassFake && labels[i] == classifier.ClassReal:
			fp++
		case predicted == classifier.ClassReal && labels[i] == classifier.ClassFake:
			fn++
		}
	}

	report := &Report{}
	if len(docs) > 0 {
		report.Accuracy = float64(correct) / float64(len(docs))
	}
	if tp+fp > 0 {
		report.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		report.Recall = float64(tp) / float64(tp+fn)
	}
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}
	return report
}
