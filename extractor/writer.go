package extractor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dns-parser/internal/types"
)

// TimestampLayout renders as e.g. 05-March-2024-14:07
const TimestampLayout = "02-January-2006-15:04"

// ResultWriter stores a run's products as one JSON array per file
type ResultWriter struct {
	dir    string
	prefix string
	now    func() time.Time
	logger types.Logger
}

// NewResultWriter creates a writer for the configured output directory
func NewResultWriter(config *types.Config, logger types.Logger) *ResultWriter {
	return &ResultWriter{
		dir:    config.OutputDir,
		prefix: config.FilePrefix,
		now:    time.Now,
		logger: logger,
	}
}

// FileName returns the file name used for a capture taken at t
func (w *ResultWriter) FileName(t time.Time) string {
	return fmt.Sprintf("%s-%s.json", w.prefix, t.Format(TimestampLayout))
}

// Write creates the output directory if needed and writes products to a
// timestamped file, returning its path. Failures are *types.WriteError.
func (w *ResultWriter) Write(products []types.Product) (string, error) {
	path := filepath.Join(w.dir, w.FileName(w.now()))

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", &types.WriteError{Path: path, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	if products == nil {
		products = []types.Product{}
	}
	jsonData, err := json.Marshal(products)
	if err != nil {
		return "", &types.WriteError{Path: path, Err: fmt.Errorf("failed to marshal results to JSON: %w", err)}
	}

	if err := writeToFile(path, jsonData); err != nil {
		return "", &types.WriteError{Path: path, Err: err}
	}

	w.logger.Debugf("Wrote %d products (%d bytes) to %s", len(products), len(jsonData), path)
	return path, nil
}

// writeToFile writes data to a file
func writeToFile(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0644)
}
