package main

import (
	"context"
	"flag"
	"log"

	"timepiece/internal/config"
	"timepiece/internal/infra/db"
	infraRepo "timepiece/internal/infra/repository"
	"timepiece/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "cmd/seed/catalog.yaml", "catalog yaml")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	catalog, err := seed.LoadFile(*file)
	if err != nil {
		log.Fatalf("load %s: %v", *file, err)
	}

	res, err := seed.NewImporter(infraRepo.NewTxManagerGorm(gormDB)).Import(context.Background(), catalog)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("seeded %d categories, %d products", res.Categories, res.Products)
}
