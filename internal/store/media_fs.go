// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// fileImageStorage keeps avatar assets in a local directory that the HTTP
// server exposes under baseURL.
type fileImageStorage struct {
	dir     string
	baseURL string
	logger  *logger.Logger
}

// NewFileImageStorage constructs an [ImageStorage] rooted at dir. The
// directory is created when missing.
func NewFileImageStorage(dir, baseURL string, logger *logger.Logger) (ImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating media directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating file image storage")
	return &fileImageStorage{
		dir:     dir,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

// Save writes content to a temporary file next to the target and renames it
// into place, so readers never observe a partial asset.
func (s *fileImageStorage) Save(ctx context.Context, key string, content io.Reader, contentType string) error {
	log := logger.FromContext(ctx)

	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("error creating image directory")
		return fmt.Errorf("error creating image directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("error creating temporary file")
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, content); err != nil {
		tmp.Close()
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("error writing image")
		return fmt.Errorf("error writing image: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error writing image: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		log.Err(err).Str("func", "*fileImageStorage.Save").Msg("error moving image into place")
		return fmt.Errorf("error moving image into place: %w", err)
	}

	log.Debug().Str("key", key).Str("content_type", contentType).Msg("image saved")
	return nil
}

func (s *fileImageStorage) Delete(ctx context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*fileImageStorage.Delete").Msg("error removing image")
		return fmt.Errorf("error removing image: %w", err)
	}

	return nil
}

func (s *fileImageStorage) URL(_ context.Context, key string) (string, error) {
	clean, err := cleanImageKey(key)
	if err != nil {
		return "", err
	}

	return url.JoinPath(s.baseURL, strings.Split(clean, "/")...)
}

func (s *fileImageStorage) path(key string) (string, error) {
	clean, err := cleanImageKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}

// cleanImageKey normalises key to a relative slash path inside the storage
// root.
func cleanImageKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidImageKey
	}

	clean := strings.TrimPrefix(path.Clean("/"+key), "/")
	if clean == "" {
		return "", ErrInvalidImageKey
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", ErrInvalidImageKey
		}
	}

	return clean, nil
}
