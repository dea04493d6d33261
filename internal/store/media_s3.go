// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// The narrow S3 surfaces used by s3ImageStorage.
type (
	s3Uploader interface {
		Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
	}

	s3ObjectDeleter interface {
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	s3Presigner interface {
		PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	}
)

// s3ImageStorage keeps avatar assets as private objects of an S3 compatible
// bucket and hands out presigned GET URLs.
type s3ImageStorage struct {
	uploader   s3Uploader
	deleter    s3ObjectDeleter
	presigner  s3Presigner
	bucket     string
	presignTTL time.Duration
	logger     *logger.Logger
}

// NewS3ImageStorage builds an [ImageStorage] for cfg.Bucket. Static
// credentials are used when configured, otherwise the default AWS credential
// chain applies. A custom Endpoint switches to path-style addressing, which
// MinIO and most S3 compatible services expect.
func NewS3ImageStorage(ctx context.Context, cfg config.Media, logger *logger.Logger) (ImageStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Err(err).Str("func", "NewS3ImageStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 image storage")
	return newS3ImageStorage(manager.NewUploader(client), client, s3.NewPresignClient(client), cfg.Bucket, cfg.PresignTTL, logger), nil
}

func newS3ImageStorage(uploader s3Uploader, deleter s3ObjectDeleter, presigner s3Presigner, bucket string, ttl time.Duration, logger *logger.Logger) *s3ImageStorage {
	return &s3ImageStorage{
		uploader:   uploader,
		deleter:    deleter,
		presigner:  presigner,
		bucket:     bucket,
		presignTTL: ttl,
		logger:     logger,
	}
}

func (s *s3ImageStorage) Save(ctx context.Context, key string, content io.Reader, contentType string) error {
	clean, err := cleanImageKey(key)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
		Body:   content,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err = s.uploader.Upload(ctx, input); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStorage.Save").Str("key", clean).Msg("error uploading image")
		return fmt.Errorf("upload %s: %w", clean, err)
	}

	return nil
}

// Delete removes the object. S3 reports success for missing keys.
func (s *s3ImageStorage) Delete(ctx context.Context, key string) error {
	clean, err := cleanImageKey(key)
	if err != nil {
		return err
	}

	if _, err = s.deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
	}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStorage.Delete").Str("key", clean).Msg("error deleting image")
		return fmt.Errorf("delete %s: %w", clean, err)
	}

	return nil
}

func (s *s3ImageStorage) URL(ctx context.Context, key string) (string, error) {
	clean, err := cleanImageKey(key)
	if err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStorage.URL").Str("key", clean).Msg("error presigning image url")
		return "", fmt.Errorf("presign %s: %w", clean, err)
	}

	return req.URL, nil
}
