package coupon

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectStore is the subset of the S3 client the coupon table needs.
type objectStore interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store reads and publishes coupon tables in an S3 bucket. Keys ending
// in .gz hold gzipped YAML.
type S3Store struct {
	client objectStore
	bucket string
	logger zerolog.Logger
}

// NewS3Store creates a coupon table store for bucket using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region string, logger zerolog.Logger) (*S3Store, error) {
	logger = logger.With().Str("component", "s3-coupon-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 coupon store initialised")

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads the coupon table stored under key. key is the full object key, prefix included.
func (s *S3Store) Load(ctx context.Context, key string) (*Table, error) {
	log := s.logger.With().Str("bucket", s.bucket).Str("key", key).Logger()
	log.Info().Msg("loading coupon table from S3")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}
	defer result.Body.Close()

	table, err := decodeTable(result.Body, strings.HasSuffix(key, ".gz"))
	if err != nil {
		log.Error().Err(err).Msg("failed to decode coupon table from S3")
		return nil, fmt.Errorf("failed to decode coupon table from S3 %s: %w", key, err)
	}

	log.Info().Int("coupons_loaded", table.Size()).Msg("coupon table loaded from S3")

	return table, nil
}

// Publish uploads table under key, replacing any existing object.
func (s *S3Store) Publish(ctx context.Context, key string, table *Table) error {
	gzipped := strings.HasSuffix(key, ".gz")

	var buf bytes.Buffer
	if err := encodeTable(&buf, table, gzipped); err != nil {
		return err
	}

	contentType := "application/yaml"
	if gzipped {
		contentType = "application/gzip"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to put coupon table")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().Str("key", key).Int("coupons", table.Size()).Msg("coupon table published to S3")
	return nil
}

// fallbackLoader implements a loader that tries S3 first, then falls back to local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
	s3Enabled  bool
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to local file system.
// If s3Loader is nil, it will only use the file loader.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		s3Enabled:  s3Enabled,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load reads s3Prefix+filePath from S3 and, when that fails, filePath from disk.
func (l *fallbackLoader) Load(ctx context.Context, filePath string) (*Table, error) {
	if l.s3Enabled && l.s3Loader != nil {
		s3Key := l.s3Prefix + filePath

		l.logger.Info().
			Str("s3_key", s3Key).
			Str("local_fallback", filePath).
			Msg("attempting to load from S3")

		table, err := l.s3Loader.Load(ctx, s3Key)
		if err == nil {
			l.logger.Info().
				Str("s3_key", s3Key).
				Msg("successfully loaded from S3")
			return table, nil
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to load from S3, falling back to local file system")
	} else {
		l.logger.Debug().
			Bool("s3_enabled", l.s3Enabled).
			Bool("has_s3_loader", l.s3Loader != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	l.logger.Info().
		Str("file_path", filePath).
		Msg("loading from local file system")

	return l.fileLoader.Load(ctx, filePath)
}
