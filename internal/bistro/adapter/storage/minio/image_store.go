package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"bistro-boss/internal/bistro/domain/repository"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioAPI is the part of *minio.Client the image store calls.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// ImageStore keeps menu images in one bucket.
type ImageStore struct {
	api     minioAPI
	bucket  string
	baseURL string
}

// Options configure NewImageStore.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes object URLs. Defaults to the endpoint.
	PublicURL string
}

// NewClient creates the underlying MinIO client.
func NewClient(opts Options) (*minio.Client, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// NewImageStore ensures the bucket exists and returns the store.
func NewImageStore(ctx context.Context, client *minio.Client, opts Options) (*ImageStore, error) {
	return newImageStoreWithAPI(ctx, client, opts)
}

func newImageStoreWithAPI(ctx context.Context, api minioAPI, opts Options) (*ImageStore, error) {
	s := &ImageStore{
		api:     api,
		bucket:  opts.Bucket,
		baseURL: publicBaseURL(opts),
	}
	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}
	return s, nil
}

func publicBaseURL(opts Options) string {
	if opts.PublicURL != "" {
		return strings.TrimRight(opts.PublicURL, "/")
	}
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + opts.Endpoint
}

func (s *ImageStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// PutImage uploads the image and returns its public URL.
func (s *ImageStore) PutImage(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.api.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.URL(key), nil
}

// RemoveImage deletes an uploaded image.
func (s *ImageStore) RemoveImage(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// URL is the public address of key.
func (s *ImageStore) URL(key string) string {
	return s.baseURL + "/" + url.PathEscape(s.bucket) + "/" + (&url.URL{Path: key}).EscapedPath()
}

var _ repository.ImageStore = (*ImageStore)(nil)
