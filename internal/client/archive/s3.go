// Package archive uploads ledger exports to S3-compatible object storage
// (AWS S3, MinIO).
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNoBucket is returned when archiving is requested without a bucket.
var ErrNoBucket = errors.New("archive bucket not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config selects the bucket and credentials. Empty credentials fall back to
// the default AWS chain (env, shared config, instance role).
type Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Uploader stores exports under Prefix in Bucket.
type Uploader struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewUploader builds an S3 client from cfg. A custom Endpoint switches to
// path-style addressing, which MinIO needs.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNoBucket
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &Uploader{
		client: newS3ClientFromConfig(awsCfg, s3Opts...),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Upload stores an XLSX export as name and returns the object key.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	key := u.prefix + name
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(xlsxContentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 put object failed: %w", err)
	}
	return key, nil
}
