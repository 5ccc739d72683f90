package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "migrations-path", "", "path to migrations")

	// InitConfig registers the -config flag and parses both.
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	if migrationsPath == "" {
		migrationsPath = os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "migrations"
		}
	}

	m, err := migrate.New("file://"+migrationsPath, postgresURL(&cfg.Postgres))
	if err != nil {
		panic(fmt.Sprintf("failed to create migrator: %v", err))
	}

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no pending migrations")
			return
		}
		panic(fmt.Sprintf("failed to apply migrations: %v", err))
	}

	log.Info("migrations applied", logger.String("path", migrationsPath))
}

func postgresURL(psqlCfg *config.PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		psqlCfg.User, psqlCfg.Pwd, psqlCfg.Host, psqlCfg.Port, psqlCfg.DbName, psqlCfg.SslMode)
}
