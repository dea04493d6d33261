// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

type Handler struct {
	services *service.Services

	server config.Server
	media  config.Media

	logger *logger.Logger
}

func NewHandler(services *service.Services, server config.Server, media config.Media, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		server:   server,
		media:    media,
		logger:   logger,
	}
}
