package coupon

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk layout of a coupon table.
type tableFile struct {
	Coupons []Coupon `yaml:"coupons"`
}

// fileLoader implements Loader for reading coupon tables from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a coupon table file. Files ending in .gz are decompressed first.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Table, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon table")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	table, err := decodeTable(file, strings.HasSuffix(filePath, ".gz"))
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode coupon file")
		return nil, fmt.Errorf("failed to decode coupon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", table.Size()).
		Msg("coupon table loaded successfully")

	return table, nil
}

// decodeTable parses a YAML coupon table from r.
func decodeTable(r io.Reader, gzipped bool) (*Table, error) {
	if gzipped {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var f tableFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid coupon table: %w", err)
	}

	if len(f.Coupons) == 0 {
		return nil, fmt.Errorf("coupon table is empty")
	}

	return NewTable(f.Coupons)
}

// LoadTable returns the coupon table at filePath, or the built-in table when no path is configured.
func LoadTable(ctx context.Context, loader Loader, filePath string, logger zerolog.Logger) (*Table, error) {
	if filePath == "" {
		table := DefaultTable()
		logger.Info().Int("coupons", table.Size()).Msg("using built-in coupon table")
		return table, nil
	}

	return loader.Load(ctx, filePath)
}

// WriteFile saves table in the layout the file loader reads, gzipped when
// filePath ends in .gz. Missing parent directories are created.
func WriteFile(filePath string, table *Table) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create coupon file %s: %w", filePath, err)
	}

	if err := encodeTable(file, table, strings.HasSuffix(filePath, ".gz")); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close coupon file %s: %w", filePath, err)
	}
	return nil
}

// encodeTable writes table as YAML to w.
func encodeTable(w io.Writer, table *Table, gzipped bool) error {
	var gzipWriter *gzip.Writer
	if gzipped {
		gzipWriter = gzip.NewWriter(w)
		w = gzipWriter
	}

	encoder := yaml.NewEncoder(w)
	if err := encoder.Encode(tableFile{Coupons: table.All()}); err != nil {
		return fmt.Errorf("failed to encode coupon table: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode coupon table: %w", err)
	}

	if gzipWriter != nil {
		if err := gzipWriter.Close(); err != nil {
			return fmt.Errorf("failed to compress coupon table: %w", err)
		}
	}
	return nil
}
