package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubFetcher struct {
	bucket, key string
	data        []byte
}

func (s *stubFetcher) FetchObject(_ context.Context, bucket, key string) ([]byte, error) {
	s.bucket, s.key = bucket, key
	return s.data, nil
}

func TestParseS3Location(t *testing.T) {
	bucket, key, err := ParseS3Location("s3://assets/branding/logo.png")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bucket != "assets" || key != "branding/logo.png" {
		t.Fatalf("unexpected bucket=%s key=%s", bucket, key)
	}

	for _, bad := range []string{"assets/logo.png", "s3://", "s3:///logo.png", "s3://assets", "s3://assets/"} {
		if _, _, err := ParseS3Location(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, []byte("logo-bytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := New(nil).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != "logo-bytes" {
		t.Fatalf("unexpected data %q", data)
	}

	if _, err := New(nil).Fetch(context.Background(), filepath.Dir(path)); err == nil {
		t.Fatalf("expected directory to be rejected")
	}
}

func TestFetchS3(t *testing.T) {
	stub := &stubFetcher{data: []byte("remote")}
	data, err := New(stub).Fetch(context.Background(), "s3://assets/logo.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != "remote" || stub.bucket != "assets" || stub.key != "logo.png" {
		t.Fatalf("unexpected fetch bucket=%s key=%s data=%q", stub.bucket, stub.key, data)
	}

	if _, err := New(nil).Fetch(context.Background(), "s3://assets/logo.png"); !errors.Is(err, ErrS3NotConfigured) {
		t.Fatalf("expected ErrS3NotConfigured, got %v", err)
	}
}
