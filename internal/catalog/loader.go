package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"pos-sync/internal/model"
)

// fileLoader implements Loader for reading gzipped snapshot files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog snapshot loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped NDJSON catalog snapshot and returns its products.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.CatalogProduct, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog snapshot")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog snapshot")
		return nil, fmt.Errorf("failed to open catalog snapshot %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	products, err := decodeSnapshot(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode catalog snapshot")
		return nil, fmt.Errorf("failed to decode catalog snapshot %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(products)).
		Msg("catalog snapshot loaded")

	return products, nil
}

// decodeSnapshot reads NDJSON product records line by line.
func decodeSnapshot(ctx context.Context, r *gzip.Reader) ([]model.CatalogProduct, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []model.CatalogProduct
	line := 0
	for scanner.Scan() {
		line++
		if line%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var product model.CatalogProduct
		if err := json.Unmarshal([]byte(text), &product); err != nil {
			return nil, fmt.Errorf("invalid product record on line %d: %w", line, err)
		}
		products = append(products, product)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	return products, nil
}
