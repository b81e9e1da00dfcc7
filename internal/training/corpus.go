package training

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/newslens/news-inspector-go/internal/logger"
)

// textColumn is the required corpus column, matched case-insensitively
const textColumn = "text"

// LoadCorpus reads one labeled CSV corpus and returns its article texts.
// The header row must contain a "text" column; other columns are ignored.
// Blank texts are dropped. A missing file or a corpus with zero usable rows
// is an error, since training on it would silently produce a useless model.
func LoadCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read corpus header %s: %w", path, err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), textColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("corpus %s has no %q column", path, textColumn)
	}

	var texts []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus %s: %w", path, err)
		}
		if col >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[col])
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("corpus %s has no usable rows", path)
	}

	logger.WithComponent("training").WithFields(map[string]interface{}{
		"path": path,
		"rows": len(texts),
	}).Info("Corpus loaded")

	return texts, nil
}

// LoadCorpora loads the fabricated and genuine corpora concurrently. Either
// failure aborts both loads.
func LoadCorpora(fakePath, realPath string) (fake []string, real []string, err error) {
	var g errgroup.Group
	g.Go(func() error {
		var err error
		fake, err = LoadCorpus(fakePath)
		return err
	})
	g.Go(func() error {
		var err error
		real, err = LoadCorpus(realPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fake, real, nil
}
