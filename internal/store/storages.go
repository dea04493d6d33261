// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// Storages groups every persistence dependency of the service layer.
type Storages struct {
	UserRepository    UserRepository
	PostRepository    PostRepository
	CommentRepository CommentRepository
	ImageStorage      ImageStorage

	db *DB
}

// NewStorages connects to the database, applies migrations and builds the
// repositories and the configured image storage.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnection(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	images, err := NewImageStorage(ctx, cfg.Media, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		PostRepository:    NewPostRepository(db, log),
		CommentRepository: NewCommentRepository(db, log),
		ImageStorage:      images,
		db:                db,
	}, nil
}

// NewImageStorage returns the image storage selected by cfg.Backend.
func NewImageStorage(ctx context.Context, cfg config.Media, log *logger.Logger) (ImageStorage, error) {
	switch cfg.Backend {
	case config.MediaBackendFS:
		return NewFileImageStorage(cfg.Dir, cfg.BaseURL, log)
	case config.MediaBackendS3:
		return NewS3ImageStorage(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
	}
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
