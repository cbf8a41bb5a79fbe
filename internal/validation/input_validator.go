// Package validation checks dataset inputs before loading so the CLI can
// fail with a clear message instead of a parse error.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"salespulse/internal/ingest"
)

// InputValidator validates dataset directories and workbooks.
type InputValidator struct {
	logger *slog.Logger
}

// NewInputValidator creates a validator. A nil logger falls back to
// slog.Default.
func NewInputValidator(logger *slog.Logger) *InputValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &InputValidator{logger: logger}
}

// ValidateInputDirectory checks that the directory exists and contains the
// required order files. Reference files are optional and not checked.
func (v *InputValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("stat input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", dir)
	}

	for _, name := range []string{ingest.OrdersFile, ingest.LinesFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			v.logger.Error("required input file missing",
				slog.String("directory", dir),
				slog.String("file", name))
			return fmt.Errorf("input directory %s is missing %s", dir, name)
		}
	}
	return nil
}

// ValidateWorkbook checks that the workbook exists and has an Excel
// extension.
func (v *InputValidator) ValidateWorkbook(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("workbook %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("stat workbook %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("workbook path %s is a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		return fmt.Errorf("workbook %s has unsupported extension %s", path, ext)
	}
	return nil
}
