package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI without a network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	madeBucket      bool

	putErr         error
	putKey         string
	putContentType string
	putBody        []byte

	removeErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return nil
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	f.putKey = key
	f.putContentType = opts.ContentType
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{Key: key}, nil
}

func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

func TestNewImageStore_CreatesBucket(t *testing.T) {
	api := &fakeMinio{}
	s, err := newImageStoreWithAPI(context.Background(), api, Options{Endpoint: "localhost:9000", Bucket: "menu"})

	require.NoError(t, err)
	assert.True(t, api.madeBucket)
	assert.Equal(t, "http://localhost:9000/menu/a.png", s.URL("a.png"))
}

func TestNewImageStore_BucketCheckFails(t *testing.T) {
	_, err := newImageStoreWithAPI(context.Background(), &fakeMinio{bucketExistsErr: errors.New("boom")}, Options{Bucket: "menu"})

	assert.ErrorContains(t, err, "failed to ensure bucket exists")
}

func TestPutImage(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	s, err := newImageStoreWithAPI(context.Background(), api, Options{Bucket: "menu", PublicURL: "https://cdn.example.com/"})
	require.NoError(t, err)

	url, err := s.PutImage(context.Background(), "menu/42/salad.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg")), 4)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/menu/menu/42/salad.jpg", url)
	assert.Equal(t, "image/jpeg", api.putContentType)
	assert.Equal(t, []byte("jpeg"), api.putBody)
	assert.False(t, api.madeBucket)
}

func TestPutImage_Error(t *testing.T) {
	s, err := newImageStoreWithAPI(context.Background(), &fakeMinio{bucketExists: true, putErr: errors.New("denied")}, Options{Bucket: "menu"})
	require.NoError(t, err)

	_, err = s.PutImage(context.Background(), "k", "image/png", bytes.NewReader(nil), 0)

	assert.ErrorContains(t, err, "failed to upload image")
}

func TestRemoveImage(t *testing.T) {
	s, err := newImageStoreWithAPI(context.Background(), &fakeMinio{bucketExists: true, removeErr: errors.New("nope")}, Options{Bucket: "menu"})
	require.NoError(t, err)

	assert.ErrorContains(t, s.RemoveImage(context.Background(), "k"), "failed to delete image")
}
