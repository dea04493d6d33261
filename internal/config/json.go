// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file format.
// Durations are written as strings ("30s") or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		SecretKey        string `json:"secret_key"`
		TokenExpiryDays  int    `json:"token_expiry_days"`
		PublicURL        string `json:"public_url"`
		PasswordHashCost int    `json:"password_hash_cost"`
		Version          string `json:"version"`
		LogLevel         string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		Mode             string   `json:"mode"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenAudience    string   `json:"token_audience"`
		TokenDuration    Duration `json:"token_duration"`
		IntrospectionURL string   `json:"introspection_url"`
		ClientID         string   `json:"client_id"`
		ClientSecret     string   `json:"client_secret"`
		Timeout          Duration `json:"timeout"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Media struct {
			Backend         string   `json:"backend"`
			Dir             string   `json:"dir"`
			BaseURL         string   `json:"base_url"`
			Bucket          string   `json:"bucket"`
			Region          string   `json:"region"`
			Endpoint        string   `json:"endpoint"`
			AccessKeyID     string   `json:"access_key_id"`
			SecretAccessKey string   `json:"secret_access_key"`
			PresignTTL      Duration `json:"presign_ttl"`
			MaxUploadSize   int64    `json:"max_upload_size"`
		} `json:"media,omitempty"`
	} `json:"storage,omitempty"`

	Mail struct {
		Transport string   `json:"transport"`
		Host      string   `json:"host"`
		Port      int      `json:"port"`
		Username  string   `json:"username"`
		Password  string   `json:"password"`
		From      string   `json:"from"`
		TLSPolicy string   `json:"tls_policy"`
		Timeout   Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		AllowedOrigins  []string `json:"allowed_origins"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SecretKey:        jsonCfg.App.SecretKey,
			TokenExpiryDays:  jsonCfg.App.TokenExpiryDays,
			PublicURL:        jsonCfg.App.PublicURL,
			PasswordHashCost: jsonCfg.App.PasswordHashCost,
			Version:          jsonCfg.App.Version,
			LogLevel:         jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			Mode:             jsonCfg.Auth.Mode,
			TokenSignKey:     jsonCfg.Auth.TokenSignKey,
			TokenIssuer:      jsonCfg.Auth.TokenIssuer,
			TokenAudience:    jsonCfg.Auth.TokenAudience,
			TokenDuration:    time.Duration(jsonCfg.Auth.TokenDuration),
			IntrospectionURL: jsonCfg.Auth.IntrospectionURL,
			ClientID:         jsonCfg.Auth.ClientID,
			ClientSecret:     jsonCfg.Auth.ClientSecret,
			Timeout:          time.Duration(jsonCfg.Auth.Timeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Media: Media{
				Backend:         jsonCfg.Storage.Media.Backend,
				Dir:             jsonCfg.Storage.Media.Dir,
				BaseURL:         jsonCfg.Storage.Media.BaseURL,
				Bucket:          jsonCfg.Storage.Media.Bucket,
				Region:          jsonCfg.Storage.Media.Region,
				Endpoint:        jsonCfg.Storage.Media.Endpoint,
				AccessKeyID:     jsonCfg.Storage.Media.AccessKeyID,
				SecretAccessKey: jsonCfg.Storage.Media.SecretAccessKey,
				PresignTTL:      time.Duration(jsonCfg.Storage.Media.PresignTTL),
				MaxUploadSize:   jsonCfg.Storage.Media.MaxUploadSize,
			},
		},
		Mail: Mail{
			Transport: jsonCfg.Mail.Transport,
			Host:      jsonCfg.Mail.Host,
			Port:      jsonCfg.Mail.Port,
			Username:  jsonCfg.Mail.Username,
			Password:  jsonCfg.Mail.Password,
			From:      jsonCfg.Mail.From,
			TLSPolicy: jsonCfg.Mail.TLSPolicy,
			Timeout:   time.Duration(jsonCfg.Mail.Timeout),
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			AllowedOrigins:  jsonCfg.Server.AllowedOrigins,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
