package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/newslens/news-inspector-go/internal/logger"
	"github.com/newslens/news-inspector-go/internal/training"
)

func main() {
	logger.UseTextFormatter()

	defaults := training.DefaultOptions()
	fakePath := flag.String("fake", "data/Fake.csv", "CSV corpus of fabricated articles (needs a text column)")
	realPath := flag.String("real", "data/True.csv", "CSV corpus of genuine articles (needs a text column)")
	outPath := flag.String("out", "models/news_classifier.json.gz", "where to write the trained model artifact")
	maxFeatures := flag.Int("max-features", defaults.MaxFeatures, "vocabulary size cap")
	epochs := flag.Int("epochs", defaults.MaxEpochs, "maximum gradient descent epochs")
	seed := flag.Int64("seed", defaults.Seed, "shuffle seed")
	flag.Parse()

	opts := training.Options{
		FakePath:    *fakePath,
		RealPath:    *realPath,
		OutputPath:  *outPath,
		MaxFeatures: *maxFeatures,
		MaxEpochs:   *epochs,
		Seed:        *seed,
	}

	report, err := training.Run(opts)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	fmt.Printf("Trained on %d samples, evaluated on %d held-out samples\n",
		report.TrainSamples, report.TestSamples)
	fmt.Printf("  accuracy:  %.4f\n", report.Accuracy)
	fmt.Printf("  precision: %.4f\n", report.Precision)
	fmt.Printf("  recall:    %.4f\n", report.Recall)
	fmt.Printf("  f1:        %.4f\n", report.F1)
	fmt.Printf("  epochs:    %d (converged: %v)\n", report.Epochs, report.Converged)
	fmt.Printf("Model written to %s\n", *outPath)
}
