// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
)

type fakeS3 struct {
	uploaded    *s3.PutObjectInput
	body        string
	deleted     *s3.DeleteObjectInput
	presigned   *s3.GetObjectInput
	presignOpts s3.PresignOptions
	err         error
}

func (f *fakeS3) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded = input
	data, _ := io.ReadAll(input.Body)
	f.body = string(data)
	return &manager.UploadOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = params
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.presigned = params
	for _, fn := range optFns {
		fn(&f.presignOpts)
	}
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3.example.com/" + aws.ToString(params.Key) + "?X-Amz-Signature=abc"}, nil
}

func newFakeS3Storage(f *fakeS3) *s3ImageStorage {
	return newS3ImageStorage(f, f, f, "avatars", 10*time.Minute, logger.Nop())
}

func TestS3ImageStorage_Save(t *testing.T) {
	f := &fakeS3{}
	storage := newFakeS3Storage(f)

	require.NoError(t, storage.Save(context.Background(), "users/1/a.png", strings.NewReader("png"), "image/png"))

	require.NotNil(t, f.uploaded)
	assert.Equal(t, "avatars", aws.ToString(f.uploaded.Bucket))
	assert.Equal(t, "users/1/a.png", aws.ToString(f.uploaded.Key))
	assert.Equal(t, "image/png", aws.ToString(f.uploaded.ContentType))
	assert.Equal(t, "png", f.body)
}

func TestS3ImageStorage_Delete(t *testing.T) {
	f := &fakeS3{}
	storage := newFakeS3Storage(f)

	require.NoError(t, storage.Delete(context.Background(), "users/1/a.png"))
	assert.Equal(t, "users/1/a.png", aws.ToString(f.deleted.Key))
}

func TestS3ImageStorage_URLIsPresigned(t *testing.T) {
	f := &fakeS3{}
	storage := newFakeS3Storage(f)

	url, err := storage.URL(context.Background(), "users/1/a.png")
	require.NoError(t, err)

	assert.Contains(t, url, "users/1/a.png")
	assert.Contains(t, url, "X-Amz-Signature")
	assert.Equal(t, "avatars", aws.ToString(f.presigned.Bucket))
	assert.Equal(t, 10*time.Minute, f.presignOpts.Expires)
}

func TestS3ImageStorage_Errors(t *testing.T) {
	f := &fakeS3{err: errors.New("access denied")}
	storage := newFakeS3Storage(f)
	ctx := context.Background()

	assert.ErrorContains(t, storage.Save(ctx, "users/1/a.png", strings.NewReader("x"), ""), "access denied")
	assert.ErrorContains(t, storage.Delete(ctx, "users/1/a.png"), "access denied")
	_, err := storage.URL(ctx, "users/1/a.png")
	assert.ErrorContains(t, err, "access denied")

	assert.ErrorIs(t, storage.Save(ctx, "../a.png", strings.NewReader("x"), ""), ErrInvalidImageKey)
}

func TestNewS3ImageStorage_StaticCredentials(t *testing.T) {
	storage, err := NewS3ImageStorage(context.Background(), config.Media{
		Backend:         config.MediaBackendS3,
		Bucket:          "avatars",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		PresignTTL:      time.Minute,
	}, logger.Nop())
	require.NoError(t, err)

	url, err := storage.URL(context.Background(), "users/1/a.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/avatars/users/1/a.png?"), url)
}

func TestNewImageStorage_UnknownBackend(t *testing.T) {
	_, err := NewImageStorage(context.Background(), config.Media{Backend: "ftp"}, logger.Nop())
	assert.ErrorContains(t, err, "unsupported media backend")
}
