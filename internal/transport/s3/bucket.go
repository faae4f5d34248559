// Package s3 lists and signs objects in an S3-compatible media bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	dommedia "github.com/kailas-cloud/medspace/internal/domain/media"
)

// maxListObjects bounds a single listing.
const maxListObjects = 5000

// Config holds bucket connection settings.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// Bucket implements the media bucket contract on top of aws-sdk-go-v2.
type Bucket struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// New creates a bucket client with static credentials. Presigned URLs cannot
// be signed anonymously, so both keys are required.
func New(cfg Config) (*Bucket, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("access key id and secret access key are required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}
	opts.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID, cfg.SecretAccessKey, "",
	))
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	client := s3.New(opts)
	return &Bucket{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// List returns objects under prefix, following continuation tokens.
func (b *Bucket) List(ctx context.Context, prefix string) ([]dommedia.Object, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(b.bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var out []dommedia.Object
	pager := s3.NewListObjectsV2Paginator(b.client, input)
	for pager.HasMorePages() && len(out) < maxListObjects {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects %s/%s: %w", b.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			out = append(out, dommedia.NewObject(
				aws.ToString(obj.Key), aws.ToInt64(obj.Size), aws.ToTime(obj.LastModified),
			))
		}
	}
	return out, nil
}

// PresignGet returns a GET URL for key valid for expiry.
func (b *Bucket) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// Ping checks that the bucket is reachable.
func (b *Bucket) Ping(ctx context.Context) error {
	if _, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", b.bucket, err)
	}
	return nil
}
