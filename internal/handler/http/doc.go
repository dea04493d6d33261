// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the blog API.
//
// It wires chi routes to the service layer and owns the request scoped
// concerns: bearer authentication, trace IDs, access logging, response
// compression, CORS and the mapping of service errors onto status codes
// and JSON bodies.
package http
