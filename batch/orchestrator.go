package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/tsawler/docmark"
	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/ocr"
	"github.com/tsawler/docmark/pdf"
)

// RecognizerFactory produces one OCR recognizer per worker. The release
// func is called when the worker exits. Returning a nil recognizer makes
// workers fall back to per-document OCR acquisition.
type RecognizerFactory func() (pdf.Recognizer, func(), error)

// Orchestrator runs the conversion pipeline over a directory of documents.
type Orchestrator struct {
	cfg           Config
	newRecognizer RecognizerFactory
}

// New creates an orchestrator for the given configuration.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	o := &Orchestrator{cfg: cfg}
	o.newRecognizer = o.defaultRecognizerFactory
	return o, nil
}

// WithRecognizerFactory replaces how workers obtain OCR recognizers.
// Used by tests and by callers that pool engines themselves.
func (o *Orchestrator) WithRecognizerFactory(f RecognizerFactory) *Orchestrator {
	o.newRecognizer = f
	return o
}

// defaultRecognizerFactory builds a Tesseract client from the OCR and
// model settings. Builds without the ocr tag yield no pooled recognizer;
// documents that need OCR then fail individually with OCRUnavailable.
func (o *Orchestrator) defaultRecognizerFactory() (pdf.Recognizer, func(), error) {
	opts := ocr.DefaultOptions()
	if len(o.cfg.OCR.Languages) > 0 {
		opts.Languages = o.cfg.OCR.Languages
	}
	opts.PreferGPU = o.cfg.OCR.UseGPU
	if o.cfg.Models.UseLocal {
		opts.DataPath = o.cfg.Models.CacheDir
	}

	client, err := ocr.NewWithOptions(opts)
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

// ProcessAll converts every supported document under the input directory.
// Per-document failures are recorded in the report and never stop the
// batch; only an unreadable input directory fails the run itself.
func (o *Orchestrator) ProcessAll(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	inputs, err := o.collectInputs()
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	if err := os.MkdirAll(o.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	log.Info().
		Str("run_id", report.RunID).
		Str("input_dir", o.cfg.InputDir).
		Int("documents", len(inputs)).
		Int("workers", o.cfg.Workers).
		Msg("batch run started")

	jobs := make(chan string, len(inputs))
	results := make(chan DocumentResult, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < o.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.worker(ctx, jobs, results)
		}()
	}

	for _, path := range inputs {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		report.Results = append(report.Results, res)
	}
	report.Elapsed = time.Since(report.Started)

	log.Info().
		Str("run_id", report.RunID).
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Int("degraded", report.Degraded()).
		Dur("elapsed", report.Elapsed).
		Msg("batch run finished")

	return report, nil
}

// collectInputs walks the input directory for supported documents,
// skipping Office lock files ("~$...") and files of unknown format.
func (o *Orchestrator) collectInputs() ([]string, error) {
	var inputs []string
	err := filepath.WalkDir(o.cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if format.Detect(name) == format.Unknown {
			log.Debug().Str("path", path).Msg("skipping unsupported file")
			return nil
		}
		inputs = append(inputs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

// worker converts documents from the jobs channel until it is drained.
// Each worker holds its own recognizer so OCR engines are never shared.
func (o *Orchestrator) worker(ctx context.Context, jobs <-chan string, results chan<- DocumentResult) {
	rec, release, err := o.newRecognizer()
	if err != nil {
		log.Error().Err(err).Msg("worker could not acquire OCR recognizer")
		rec = nil
		release = func() {}
	}
	defer release()

	for path := range jobs {
		results <- o.processDocument(ctx, path, rec)
	}
}

func (o *Orchestrator) processDocument(ctx context.Context, path string, rec pdf.Recognizer) DocumentResult {
	start := time.Now()

	conv := docmark.Open(path).
		SummarySentences(o.cfg.SummarySentences).
		TopKeywords(o.cfg.KeywordsTopN).
		ShortTextThreshold(o.cfg.ShortTextThreshold).
		OCRLanguages(o.cfg.OCR.Languages...)
	if rec != nil {
		conv = conv.WithRecognizer(rec)
	}

	result, err := conv.Convert(ctx)
	if err != nil {
		kind := docmark.KindOf(err)
		log.Error().Err(err).Str("path", path).Str("kind", kind.String()).Msg("conversion failed")
		return DocumentResult{
			Path:      path,
			Status:    Failed,
			ErrorKind: kind.String(),
			Detail:    err.Error(),
			Elapsed:   time.Since(start),
		}
	}

	if err := o.writeArtifacts(path, result); err != nil {
		kind := docmark.KindOf(err)
		log.Error().Err(err).Str("path", path).Str("kind", kind.String()).Msg("writing artifacts failed")
		return DocumentResult{
			Path:      path,
			Status:    Failed,
			ErrorKind: kind.String(),
			Detail:    err.Error(),
			Elapsed:   time.Since(start),
		}
	}

	res := DocumentResult{
		Path:    path,
		Status:  Succeeded,
		Elapsed: time.Since(start),
	}
	if result.Meta.Degraded {
		res.Degraded = true
		res.Detail = result.Meta.DegradedReason
		log.Warn().Str("path", path).Str("reason", result.Meta.DegradedReason).Msg("metadata degraded")
	}

	log.Info().
		Str("path", path).
		Str("format", result.Format.String()).
		Dur("elapsed", res.Elapsed).
		Msg("document converted")
	return res
}

// writeArtifacts persists the Markdown and metadata files. Nothing is
// left behind when either write fails.
func (o *Orchestrator) writeArtifacts(inputPath string, result *docmark.Result) error {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	mdPath := filepath.Join(o.cfg.OutputDir, base+".md")
	jsonPath := filepath.Join(o.cfg.OutputDir, base+"_metadata.json")

	if err := os.WriteFile(mdPath, []byte(result.Markdown), 0644); err != nil {
		os.Remove(mdPath)
		return &docmark.ConversionError{Kind: docmark.IOFailure, Path: inputPath, Err: err}
	}

	metaJSON, err := json.MarshalIndent(result.Meta, "", "  ")
	if err == nil {
		err = os.WriteFile(jsonPath, metaJSON, 0644)
	}
	if err != nil {
		os.Remove(mdPath)
		os.Remove(jsonPath)
		return &docmark.ConversionError{Kind: docmark.IOFailure, Path: inputPath, Err: err}
	}

	return nil
}
