// Command validate runs a transaction file through the validation
// pipeline from the command line and prints the report as JSON. Exits
// with code 1 when the file is invalid, 2 on a pre-parse rejection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"dataniaga/internal/config"
	"dataniaga/internal/services"
	"dataniaga/pkg/contracts/domain"
)

func main() {
	verbose := flag.Bool("v", false, "log pipeline progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-v] <file.csv|file.xlsx|file.xls>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	report, err := run(path, os.Stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(2)
	}
	if !report.IsValid {
		os.Exit(1)
	}
}

func run(path string, out io.Writer, logger *slog.Logger) (domain.DataValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.DataValidationResult{}, err
	}

	cfg, err := config.Load()
	if err != nil {
		return domain.DataValidationResult{}, fmt.Errorf("load configuration: %w", err)
	}

	svc := services.NewValidationService(cfg.Validation, nil, logger)
	result, err := svc.ValidateFile(context.Background(), filepath.Base(path), content)
	if err != nil {
		return domain.DataValidationResult{}, err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Report); err != nil {
		return domain.DataValidationResult{}, err
	}
	return result.Report, nil
}
