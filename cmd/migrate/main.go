package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"librobuddy-backend/internal/config"
	"librobuddy-backend/migrations"
	"librobuddy-backend/pkg/logger"
)

const usage = `usage: migrate <command>

commands:
  up        apply all pending migrations
  down      roll back the latest migration
  status    print the state of every migration
`

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("migration failed")
	}
}

func run(command string) error {
	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "status":
		return goose.Status(db, ".")
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
