package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/liftworks/service-api/internal/config"
)

const usage = `migrate manages the lift service database schema.

Usage:
  migrate [flags] <command> [args]

Commands:
  up               apply all pending migrations
  down             roll back the most recent migration
  status           print the applied/pending state of each migration
  version          print the current schema version
  create <name>    scaffold a new SQL migration (e.g. create add_amc_renewals)

Flags:
  -dir string      migrations directory (default "./migrations")
  -dsn string      postgres connection string; overrides LIFTWORKS_DB_DSN
                   and the configured database settings

The connection string is resolved in order: -dsn flag, the
LIFTWORKS_DB_DSN environment variable, then the database section of the
service configuration.
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dir := fs.String("dir", "./migrations", "migrations directory")
	dsn := fs.String("dsn", "", "postgres connection string")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}
	command, arguments := args[0], args[1:]

	connStr, err := resolveDSN(*dsn)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.Up(db, *dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		fmt.Println("schema is up to date")

	case "down":
		if err := goose.Down(db, *dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		fmt.Println("rolled back one migration")

	case "status":
		if err := goose.Status(db, *dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}

	case "version":
		if err := goose.Version(db, *dir); err != nil {
			return fmt.Errorf("schema version: %w", err)
		}

	case "create":
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name, e.g. migrate create add_amc_renewals")
		}
		if err := goose.Create(db, *dir, arguments[0], "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}

// resolveDSN picks the connection string from the flag, the environment,
// or the service configuration, in that order.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}
	if env := os.Getenv("LIFTWORKS_DB_DSN"); env != "" {
		return env, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.Database.ConnectionString(), nil
}
