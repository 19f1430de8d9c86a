package storage

import (
	"context"
	"fmt"
	"io"

	appConfig "blend-calendar-api/core/config"
	"blend-calendar-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores uploaded files (event cover images) in S3.
type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

type s3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Uploader builds an uploader from the s3 section of the app config.
func NewS3Uploader(cfg appConfig.S3Config) Uploader {
	client := s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		BaseEndpoint: optionalEndpoint(cfg.Endpoint),
	})

	return &s3Uploader{client: client, bucket: cfg.Bucket, region: cfg.Region}
}

func optionalEndpoint(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return &endpoint
}

func (u *s3Uploader) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("S3Uploader:Upload", "error", err, "key", key)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	logger.Info("S3Uploader:Upload:Success", "key", key, "url", url)
	return url, nil
}
