package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Backend stores clips and rendered shorts in Amazon S3.
type S3Backend struct {
	client *s3.Client
}

// NewS3Backend creates an S3 backend using the default AWS credential
// chain (env vars, config files, IAM roles).
func NewS3Backend(ctx context.Context) (*S3Backend, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Backend{client: s3.NewFromConfig(cfg)}, nil
}

// NewS3BackendWithClient creates an S3 backend around an existing client.
func NewS3BackendWithClient(client *s3.Client) *S3Backend {
	return &S3Backend{client: client}
}

// splitS3 breaks s3://bucket/key/path into bucket and key.
func splitS3(loc string) (bucket, key string, err error) {
	scheme, path, err := ParseLocation(loc)
	if err != nil {
		return "", "", err
	}
	if scheme != "s3" {
		return "", "", fmt.Errorf("s3 backend cannot serve %s:// locations", scheme)
	}

	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 1 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 location: missing bucket name")
	}

	bucket = parts[0]
	if len(parts) > 1 {
		key = parts[1]
	}
	if key == "" {
		return "", "", fmt.Errorf("invalid S3 location: missing object key")
	}
	return bucket, key, nil
}

// Get downloads an object from S3.
func (sb *S3Backend) Get(ctx context.Context, loc string) (io.ReadCloser, error) {
	bucket, key, err := splitS3(loc)
	if err != nil {
		return nil, err
	}

	result, err := sb.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	return result.Body, nil
}

// Put uploads data to S3.
func (sb *S3Backend) Put(ctx context.Context, loc string, data io.Reader) error {
	bucket, key, err := splitS3(loc)
	if err != nil {
		return err
	}

	_, err = sb.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   data,
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object: %w", err)
	}
	return nil
}

// Exists checks if an object exists in S3.
func (sb *S3Backend) Exists(ctx context.Context, loc string) (bool, error) {
	bucket, key, err := splitS3(loc)
	if err != nil {
		return false, err
	}

	_, err = sb.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return false, nil
			}
			if httpResp, ok := apiErr.(interface{ HTTPStatusCode() int }); ok {
				if httpResp.HTTPStatusCode() == http.StatusNotFound {
					return false, nil
				}
			}
		}

		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return false, nil
		}

		return false, fmt.Errorf("failed to check S3 object existence: %w", err)
	}

	return true, nil
}
