package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service downloads assets from Amazon S3 (or compatible APIs).
type S3Service struct {
	client     *s3.Client
	downloader *manager.Downloader
}

func NewS3Service(client *s3.Client) *S3Service {
	return &S3Service{
		client:     client,
		downloader: manager.NewDownloader(client),
	}
}

func (s *S3Service) FetchObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if key == "" {
		return nil, fmt.Errorf("object key is required")
	}

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
	}
	if size := aws.ToInt64(head.ContentLength); size > MaxAssetSize {
		return nil, fmt.Errorf("object s3://%s/%s is %d bytes, limit %d", bucket, key, size, MaxAssetSize)
	}

	buf := manager.NewWriteAtBuffer(make([]byte, 0, aws.ToInt64(head.ContentLength)))
	if _, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	return buf.Bytes(), nil
}

var _ ObjectFetcher = (*S3Service)(nil)
