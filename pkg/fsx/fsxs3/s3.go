// Package fsxs3 reads upload sources from S3
package fsxs3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/hireboard/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the subset of the S3 client used here
type API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3FileSystem reads "s3://bucket/key" paths. Plain keys use the default bucket.
type S3FileSystem struct {
	client        API
	defaultBucket string
}

// NewS3FileSystem creates a reader
func NewS3FileSystem(client API, defaultBucket string) *S3FileSystem {
	return &S3FileSystem{client: client, defaultBucket: defaultBucket}
}

// SplitPath returns bucket and key of an s3 location
func (f *S3FileSystem) SplitPath(location string) (bucket, key string, err error) {
	if rest, ok := strings.CutPrefix(location, "s3://"); ok {
		b, k, found := strings.Cut(rest, "/")
		if !found || b == "" || k == "" {
			return "", "", fmt.Errorf("invalid s3 location %q", location)
		}
		return b, k, nil
	}
	if f.defaultBucket == "" {
		return "", "", fmt.Errorf("no bucket for %q", location)
	}
	return f.defaultBucket, strings.TrimPrefix(location, "/"), nil
}

func (f *S3FileSystem) Stat(ctx context.Context, location string) (fsx.FileInfo, error) {
	bucket, key, err := f.SplitPath(location)
	if err != nil {
		return fsx.FileInfo{}, err
	}

	out, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fsx.FileInfo{}, fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
	}

	name := path.Base(key)
	contentType := aws.ToString(out.ContentType)
	if contentType == "" || contentType == "binary/octet-stream" {
		contentType = fsx.DetectContentType(name, nil)
	}
	return fsx.FileInfo{
		Name:        name,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: contentType,
	}, nil
}

func (f *S3FileSystem) ReadFile(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := f.SplitPath(location)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
