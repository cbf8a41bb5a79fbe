package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/ingest"
	"salespulse/internal/validation"
)

func main() {
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	inputDir := flag.String("in", cfg.Paths.DataDir, "directory with the input CSV files")
	workbook := flag.String("workbook", "", "Excel workbook to load instead of CSV files")
	outputDir := flag.String("out", cfg.Paths.ReportsDir, "output directory for the report files")
	today := flag.String("today", cfg.Engine.Today, "reference date for recency metrics (YYYY-MM-DD, defaults to the current date)")
	formats := flag.String("format", "json,csv", "comma-separated output formats: json, csv, xlsx")
	concurrency := flag.Int("concurrency", cfg.Engine.Concurrency, "parallel aggregation stages (1 = sequential)")
	flag.Parse()

	validator := validation.NewInputValidator(logger)
	loader := ingest.NewLoader(logger)
	var ds analytics.Dataset
	if *workbook != "" {
		if err = validator.ValidateWorkbook(*workbook); err == nil {
			ds, err = loader.LoadWorkbook(*workbook)
		}
	} else {
		if err = validator.ValidateInputDirectory(*inputDir); err == nil {
			ds, err = loader.LoadDir(*inputDir)
		}
	}
	if err != nil {
		logger.Error("Failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(ds.Orders) == 0 {
		logger.Warn("No orders in dataset; the report will be empty")
	}
	if *today != "" {
		ds.Today, err = time.Parse("2006-01-02", *today)
		if err != nil {
			logger.Error("Invalid reference date",
				slog.String("today", *today),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	opts := analytics.DefaultOptions()
	opts.Concurrency = *concurrency

	engine := analytics.NewEngine(opts, logger)
	engine.OnProgress(func(percent int, phase string) {
		logger.Info("progress", slog.Int("percent", percent), slog.String("phase", phase))
	})

	report, err := engine.Analyze(context.Background(), ds)
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewWriter(*outputDir, logger)
	for _, format := range strings.Split(*formats, ",") {
		switch strings.TrimSpace(strings.ToLower(format)) {
		case "json":
			err = writer.WriteJSON(report)
		case "csv":
			err = writer.WriteCSV(report)
		case "xlsx", "excel":
			err = writer.WriteWorkbook(report)
		case "":
			continue
		default:
			logger.Error("Unknown output format", slog.String("format", format))
			os.Exit(1)
		}
		if err != nil {
			logger.Error("Failed to write report",
				slog.String("format", format),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Report complete",
		slog.String("out", *outputDir),
		slog.Float64("revenue", report.Summary.TotalRevenue),
		slog.Int("orders", report.Summary.TotalOrders))
}
