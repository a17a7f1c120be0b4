package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/openstays/stay-booking/internal/config"
)

// S3 stores uploads in a bucket. A non-empty endpoint switches to an
// S3-compatible service (minio and friends).
type S3 struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

func NewS3(cfg *config.Config) *S3 {
	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AWSKeyID, cfg.AWSSecret, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3{
		client:   s3.New(opts),
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: cfg.S3Endpoint,
	}
}

func (s *S3) Save(ctx context.Context, name string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3) URL(name string) string {
	if isAbsoluteURL(name) {
		return name
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, name)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, name)
}

var _ Store = (*S3)(nil)
