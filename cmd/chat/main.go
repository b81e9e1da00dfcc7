package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/newslens/news-inspector-go/internal/config"
	"github.com/newslens/news-inspector-go/internal/container"
	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/internal/logger"
)

func main() {
	// JSON log lines interleaved with the prompt are unreadable
	logger.UseTextFormatter()
	logger.Logger.SetLevel(logrus.WarnLevel)
	logger.Logger.SetOutput(os.Stderr)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Close()

	svc := c.Service()
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Println("News classifier. Paste an article and press enter; type 'exit' to quit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			break
		}

		result, err := svc.Predict(ctx, line)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeEmptyInput) {
				fmt.Println("Nothing classifiable in that text, try again.")
				continue
			}
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("%s (%.2f%% confidence)\n", result.Label, result.Confidence)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Read input: %v", err)
	}
}
