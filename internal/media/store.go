// Package media stores uploaded files in S3-compatible object storage.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/iliyamo/portfolio-api/internal/config"
)

// Store persists an object and returns the URL it is served from.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// objectPutter is the slice of *s3.Client used by S3Store.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes objects to one bucket.
type S3Store struct {
	client objectPutter
	cfg    appconfig.S3Config
}

// NewS3Store builds an S3 client from cfg.  Static credentials are used when
// an access key is configured, the default AWS chain otherwise.  A custom
// endpoint (MinIO, LocalStack) switches the client to path-style addressing.
func NewS3Store(ctx context.Context, cfg appconfig.S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, cfg: cfg}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return objectURL(s.cfg, key), nil
}

// objectURL is where clients fetch key from: the configured public base, the
// custom endpoint in path style, or the regional AWS virtual-host URL.
func objectURL(cfg appconfig.S3Config, key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL + "/" + escaped
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, escaped)
}
