// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command admin performs administrative actions against the blog database.
//
// Usage:
//
//	admin createuser -username alice -email alice@example.com -password secret [-staff]
//	admin token -username alice
//
// Configuration is read from the same .env file, environment and JSON file
// as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/oauth"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

const (
	cmdCreateUser = "createuser"
	cmdToken      = "token"
)

var errUnknownCommand = errors.New("unknown command")

// command is a parsed admin invocation.
type command struct {
	name     string
	username string
	email    string
	password string
	staff    bool
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: admin createuser -username NAME -email EMAIL -password PASSWORD [-staff]")
		fmt.Fprintln(os.Stderr, "       admin token -username NAME")
		os.Exit(2)
	}

	cfg, err := config.GetStructuredConfig(nil)
	if err != nil {
		logger.NewConsoleLogger("blog-admin", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewConsoleLogger("blog-admin", cfg.App.LogLevel)

	if err := run(context.Background(), cmd, *cfg, os.Stdout, log); err != nil {
		log.Fatal().Err(err).Str("command", cmd.name).Msg("admin command failed")
	}
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUnknownCommand
	}

	cmd := command{name: args[0]}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cmd.username, "username", "", "Username")

	switch cmd.name {
	case cmdCreateUser:
		fs.StringVar(&cmd.email, "email", "", "Email address")
		fs.StringVar(&cmd.password, "password", "", "Password")
		fs.BoolVar(&cmd.staff, "staff", false, "Grant staff rights")
	case cmdToken:
	default:
		return command{}, fmt.Errorf("%w: %q", errUnknownCommand, cmd.name)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return command{}, err
	}
	if cmd.username == "" {
		return command{}, errors.New("-username is required")
	}

	return cmd, nil
}

func run(ctx context.Context, cmd command, cfg config.StructuredConfig, out io.Writer, log *logger.Logger) error {
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	switch cmd.name {
	case cmdCreateUser:
		return createUser(ctx, cmd, cfg, storages, out, log)
	case cmdToken:
		return issueToken(ctx, cmd, cfg.Auth, storages.UserRepository, out)
	}
	return errUnknownCommand
}

func createUser(ctx context.Context, cmd command, cfg config.StructuredConfig, storages *store.Storages, out io.Writer, log *logger.Logger) error {
	tokenValidator, err := oauth.NewTokenValidator(cfg.Auth)
	if err != nil {
		return fmt.Errorf("error creating token validator: %w", err)
	}

	services, err := service.NewServices(storages, discardNotifier{}, tokenValidator, cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	user, err := services.AccountService.CreateUser(ctx, models.RegisterRequest{
		Username:  cmd.username,
		Email:     cmd.email,
		Password:  cmd.password,
		Password2: cmd.password,
	}, cmd.staff)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("invalid user: %v", validationErr.Fields)
		}
		return err
	}

	_, err = fmt.Fprintf(out, "created user %s (%s), staff=%t\n", user.Username, user.ID, user.IsStaff)
	return err
}

// issueToken prints a bearer token signed with the configured key. It only
// works in jwt mode since introspection tokens are issued elsewhere.
func issueToken(ctx context.Context, cmd command, cfg config.Auth, users store.UserRepository, out io.Writer) error {
	if cfg.Mode != config.AuthModeJWT {
		return fmt.Errorf("tokens can only be issued in %q auth mode", config.AuthModeJWT)
	}

	user, err := users.GetByUsername(ctx, cmd.username)
	if err != nil {
		return err
	}

	token, err := utils.GenerateJWTToken(utils.JWTParams{
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		SignKey:  cfg.TokenSignKey,
		Duration: cfg.TokenDuration,
	}, user.ID.String(), user.Username)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token.SignedString)
	return err
}

// discardNotifier satisfies service.Notifier for commands that never send
// account emails.
type discardNotifier struct{}

var _ service.Notifier = discardNotifier{}

func (discardNotifier) SendAccountActivation(context.Context, models.User, string, string) error {
	return nil
}

func (discardNotifier) SendPasswordReset(context.Context, models.User, string, string) error {
	return nil
}
