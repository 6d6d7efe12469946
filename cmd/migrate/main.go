package main

import (
	"context"
	"flag"
	"log"
	"time"

	"dicel-erp/internal/config"
	"dicel-erp/internal/db"
	"dicel-erp/migrations"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

// usage: migrate [up|down|status|version]
func main() {
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	database, err := db.Connect(context.Background(), cfg.DatabaseURL, 30*time.Second)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %v", err)
	}
	if err := goose.RunContext(context.Background(), command, database.DB, "."); err != nil {
		log.Fatalf("migrate %s: %v", command, err)
	}
}
