package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaxAssetSize bounds how much a single asset fetch may return.
const MaxAssetSize = 4 << 20

// ErrS3NotConfigured is returned for s3:// locations when no S3 client was set up.
var ErrS3NotConfigured = errors.New("s3 storage not configured")

// Service loads static assets (such as the slip logo) by location.
// A location is either "s3://bucket/key" or a local file path.
type Service interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// ObjectFetcher reads a single object from a bucket.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, bucket, key string) ([]byte, error)
}

type assetStore struct {
	s3 ObjectFetcher
}

// New returns a Service that reads local files and, when s3 is not nil, S3 objects.
func New(s3 ObjectFetcher) Service {
	return &assetStore{s3: s3}
}

func (a *assetStore) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("asset location is required")
	}

	if strings.HasPrefix(location, "s3://") {
		bucket, key, err := ParseS3Location(location)
		if err != nil {
			return nil, err
		}
		if a.s3 == nil {
			return nil, ErrS3NotConfigured
		}
		data, err := a.s3.FetchObject(ctx, bucket, key)
		if err != nil {
			return nil, err
		}
		if len(data) > MaxAssetSize {
			return nil, fmt.Errorf("asset %s exceeds %d bytes", location, MaxAssetSize)
		}
		return data, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("stat asset: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("asset %s is a directory", location)
	}
	if info.Size() > MaxAssetSize {
		return nil, fmt.Errorf("asset %s exceeds %d bytes", location, MaxAssetSize)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	return data, nil
}

// ParseS3Location splits "s3://bucket/key" into bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	if !strings.HasPrefix(location, "s3://") {
		return "", "", fmt.Errorf("invalid s3 location")
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid s3 location: bucket missing")
	}
	if len(parts) == 1 || strings.Trim(parts[1], "/") == "" {
		return "", "", fmt.Errorf("invalid s3 location: key missing")
	}
	return parts[0], strings.TrimPrefix(parts[1], "/"), nil
}
