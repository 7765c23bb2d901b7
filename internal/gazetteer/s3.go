package gazetteer

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config locates a JSON city table in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Key       string
}

// Validate reports missing settings.
func (c S3Config) Validate() error {
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.Key == "" {
		missing = append(missing, "object key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("s3 gazetteer: missing %v", missing)
	}
	return nil
}

// S3Source reads the city table from object storage.
type S3Source struct {
	client *minio.Client
	bucket string
	key    string
}

// NewS3Source creates a MinIO client for cfg.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &S3Source{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// Name implements Source.
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Load implements Source.
func (s *S3Source) Load(ctx context.Context) ([]City, error) {
	if s.client == nil {
		return nil, errors.New("s3 source: client is nil")
	}

	object, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer object.Close()

	if _, err := object.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %s not found: %w", s.Name(), err)
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}

	return DecodeJSON(object)
}
