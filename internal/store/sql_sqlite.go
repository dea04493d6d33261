// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/migrations"
)

// NewConnectSQLite opens a SQLite database with foreign keys enabled so that
// ON DELETE CASCADE is honoured. The database file is created when missing.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn, file := sqliteDSN(cfg.DSN)

	// db will be in file
	if file != "" {
		if err := createLocalDBFileIfNotExists(file); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open(migrations.DialectSQLite, dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// an in-memory database lives and dies with its connection
	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, migrations.DialectSQLite, log), nil
}

// sqliteDSN converts a configured DSN into a go-sqlite3 one with foreign keys
// switched on. It also returns the path of the database file, empty for
// in-memory databases.
func sqliteDSN(raw string) (dsn string, file string) {
	dsn = strings.TrimPrefix(raw, "sqlite://")

	path, query, _ := strings.Cut(dsn, "?")
	file = strings.TrimPrefix(path, "file:")
	if file == ":memory:" || file == "" || strings.Contains(query, "mode=memory") {
		file = ""
	}

	if !strings.Contains(query, "_foreign_keys") && !strings.Contains(query, "_fk") {
		if query == "" {
			dsn += "?_foreign_keys=1"
		} else {
			dsn += "&_foreign_keys=1"
		}
	}

	return dsn, file
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
