package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"preventivi/internal/config"
	"preventivi/internal/logger"
)

const usage = "Usage: migrate [up|down|steps N|version|force V]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := logger.New(cfg.Log)

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Info("migrations applied successfully")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Info("migrations reverted successfully")

	case "steps":
		n := intArg(log)
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration steps failed: %v", err)
		}
		log.WithField("steps", n).Info("migration steps applied")

	case "force":
		v := intArg(log)
		if err := m.Force(v); err != nil {
			log.Fatalf("force failed: %v", err)
		}
		log.WithField("version", v).Info("migration version forced")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func intArg(log logrus.FieldLogger) int {
	if len(os.Args) < 3 {
		log.Fatalf("%s requires a number argument", os.Args[1])
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("invalid %s argument: %v", os.Args[1], err)
	}
	return n
}
