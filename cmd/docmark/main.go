// Command docmark converts a directory of office documents, PDFs and
// scanned images into Markdown plus metadata JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/phuslu/log"

	"github.com/tsawler/docmark/batch"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		inputDir   = flag.String("input", "", "input directory (overrides config)")
		outputDir  = flag.String("output", "", "output directory (overrides config)")
		workers    = flag.Int("workers", 0, "concurrent workers (overrides config)")
		summary    = flag.Int("summary", 0, "summary sentence count (overrides config)")
		keywords   = flag.Int("keywords", 0, "keyword count (overrides config)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	cfg := batch.DefaultConfig()
	if *configPath != "" {
		loaded, err := batch.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "docmark: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *summary > 0 {
		cfg.SummarySentences = *summary
	}
	if *keywords > 0 {
		cfg.KeywordsTopN = *keywords
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(cfg.LogLevel),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput: true,
		},
	}

	orchestrator, err := batch.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docmark: %v\n", err)
		os.Exit(1)
	}

	report, err := orchestrator.ProcessAll(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "docmark: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Summary())
}
