package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/core/services"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the part of the S3 client the archive uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveConfig locates an S3 compatible bucket.
type ArchiveConfig struct {
	Bucket          string
	Endpoint        string // empty for AWS itself
	Region          string // defaults to "auto"
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Archive uploads exported PDFs to a bucket.
type S3Archive struct {
	client    objectPutter
	bucket    string
	publicURL string
}

var _ services.Archive = (*S3Archive)(nil)

// NewS3Archive builds the S3 client described by cfg.
func NewS3Archive(ctx context.Context, cfg ArchiveConfig) (*S3Archive, error) {
	if cfg.Bucket == "" || cfg.PublicURL == "" {
		return nil, errors.New("archive bucket and public url are required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Archive(client, cfg.Bucket, cfg.PublicURL), nil
}

func newS3Archive(client objectPutter, bucket, publicURL string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Put stores content under key and returns its public URL.
func (a *S3Archive) Put(ctx context.Context, key string, content []byte) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return a.URL(key), nil
}

// URL is the public address of key. Each path segment is escaped separately.
func (a *S3Archive) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return a.publicURL + "/" + strings.Join(segments, "/")
}
