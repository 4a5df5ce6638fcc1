package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"sarb.backend/internal/config"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	domainrepo "sarb.backend/internal/domain/repositories"
	"sarb.backend/internal/infrastructure/datasources"
	"sarb.backend/internal/infrastructure/repositories"
	"sarb.backend/pkg/crypto"
)

type createAdminDeps struct {
	loadEnv  func() error
	loadCfg  func() *config.Config
	prepare  func(ctx context.Context, cfg *config.Config) (domainrepo.UserRepository, io.Closer, error)
	generate func() (string, error)
	out      io.Writer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(ctx context.Context, cfg *config.Config) (domainrepo.UserRepository, io.Closer, error) {
			db, err := datasources.Open(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			if err := datasources.Migrate(ctx, db); err != nil {
				_ = datasources.Close(db)
				return nil, nil, err
			}
			return repositories.NewUserRepository(db), closerFunc(func() error { return datasources.Close(db) }), nil
		},
		generate: crypto.GeneratePassword,
		out:      os.Stdout,
	}
}

type adminFlags struct {
	username string
	email    string
	password string
	generate bool
}

func parseFlags(args []string) (adminFlags, error) {
	var f adminFlags
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.StringVar(&f.username, "username", "", "staff username (required)")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.password, "password", "", "new password")
	fs.BoolVar(&f.generate, "generate", false, "generate a random password and print it")
	if err := fs.Parse(args); err != nil {
		return f, err
	}

	f.username = strings.TrimSpace(f.username)
	if f.username == "" {
		return f, fmt.Errorf("--username is required")
	}
	if f.password == "" && !f.generate {
		return f, fmt.Errorf("--password or --generate is required")
	}
	if f.password != "" && f.generate {
		return f, fmt.Errorf("--password and --generate are mutually exclusive")
	}
	return f, nil
}

// runCreateAdmin creates a staff user, or promotes an existing one and resets
// its password.
func runCreateAdmin(args []string, deps createAdminDeps) error {
	def := defaultCreateAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.generate == nil {
		deps.generate = def.generate
	}
	if deps.out == nil {
		deps.out = def.out
	}

	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	password := f.password
	if f.generate {
		if password, err = deps.generate(); err != nil {
			return err
		}
	}
	if err := crypto.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	ctx := context.Background()
	users, closer, err := deps.prepare(ctx, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	user, err := users.GetByUsername(ctx, f.username)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		user = &entities.User{Username: f.username, Email: f.email, PasswordHash: hash, IsStaff: true, IsActive: true}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed creating user: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "Created staff user %s (id=%d)\n", user.Username, user.ID)
	case err != nil:
		return fmt.Errorf("failed to load user %s: %w", f.username, err)
	default:
		user.PasswordHash = hash
		user.IsStaff = true
		user.IsActive = true
		if f.email != "" {
			user.Email = f.email
		}
		if err := users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed updating user: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "Reset password for staff user %s (id=%d)\n", user.Username, user.ID)
	}

	if f.generate {
		_, _ = fmt.Fprintf(deps.out, "PASSWORD=%s\n", password)
	}
	return nil
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
