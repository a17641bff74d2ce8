package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	"placardgen/internal/mapping"
	"placardgen/internal/xlsx"
	"placardgen/pkg/placard"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Printf("placardgen %s\n", Version)
		return nil
	}

	// A .env next to the data folders can carry the PLACARD_* settings.
	_ = godotenv.Load(".env")

	config := placard.ConfigFromEnvironment()
	if flags.verbose {
		config.LogLevel = "debug"
	}
	if flags.quiet {
		config.LogLevel = "error"
	}
	if err := config.Validate(); err != nil {
		return err
	}

	logger := placard.NewLogger(os.Stderr, placard.ParseLogLevel(config.LogLevel))

	// Container-aware GOMAXPROCS before sizing the worker pool.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(format, args...)
	}))

	profile := mapping.Default()
	if flags.mappingFile != "" {
		profile, err = mapping.Load(flags.mappingFile)
		if err != nil {
			return err
		}
	}

	reportPath, err := xlsx.FindReportFile(flags.dataDir, profile.ReportPrefix)
	if err != nil {
		return err
	}
	logger.Info("loading report %s", reportPath)

	report, err := xlsx.ReadReportFile(reportPath, profile)
	if err != nil {
		return err
	}
	logger.Info("loaded %d rows (%d valid, %d without shipment, %d invalid)",
		report.TotalRows, report.ValidRows(), report.SkippedEmptyShipment, report.SkippedInvalidRows)

	templatePath := filepath.Join(flags.templateDir, profile.TemplateFile)
	tmpl, err := placard.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	gen, err := placard.NewGenerator(tmpl.Document(),
		placard.WithConfig(config),
		placard.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	shipments := flags.shipments
	if flags.all {
		shipments = report.Shipments()
	}
	if len(shipments) == 0 {
		return fmt.Errorf("report contains no renderable shipments")
	}

	workers := resolveWorkers(flags.workers, config.Workers)
	logger.Debug("rendering %d shipments with %d workers", len(shipments), workers)

	created, failed := renderBatch(shipments, report, gen, tmpl, flags.outputDir, logger, workers)

	logger.Info("done: %d documents created, %d failed", created, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d shipments failed", failed, len(shipments))
	}
	return nil
}

// renderBatch renders shipments concurrently under a bounded worker
// pool. Shipments are independent: each render clones the template and
// owns its output document, so only the counters need a lock.
func renderBatch(shipments []string, report *xlsx.Report, gen *placard.Generator, tmpl *placard.Template, outputDir string, logger *placard.Logger, workers int) (created, failed int) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, workers)

	for _, shipment := range shipments {
		wg.Add(1)
		sem <- struct{}{}
		go func(shipment string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := renderOne(shipment, report, gen, tmpl, outputDir, logger)

			mu.Lock()
			if err != nil {
				failed++
			} else {
				created++
			}
			mu.Unlock()

			if err != nil {
				logger.Error("shipment %s failed: %v", shipment, err)
			}
		}(shipment)
	}

	wg.Wait()
	return created, failed
}

func renderOne(shipment string, report *xlsx.Report, gen *placard.Generator, tmpl *placard.Template, outputDir string, logger *placard.Logger) error {
	rows := report.Rows(shipment)
	if len(rows) == 0 {
		return fmt.Errorf("no data found for shipment %s", shipment)
	}

	result, err := gen.Render(shipment, rows)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(outputDir, safeFilename("Placard_"+shipment+".docx"))
	if err := tmpl.SaveFile(result.Doc, outputPath); err != nil {
		return err
	}

	log := logger.WithField("render", result.ID)
	if result.Degraded {
		log.Warn("created %s with %d pages (degraded formatting)", outputPath, result.Pages)
	} else {
		log.Info("created %s with %d pages", outputPath, result.Pages)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// safeFilename replaces characters that are unsafe in file names.
func safeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, ". ")
	if safe == "" {
		return "placard.docx"
	}
	return safe
}
