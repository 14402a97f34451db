package main

import (
	"context"
	"flag"
	"log"

	"palaver/config"
	"palaver/pkg/database"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo users after migrating")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("schema up to date")

	if *seed {
		if err := database.Seed(context.Background(), db); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("demo users seeded")
	}
}
