package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"factcheck/internal/config"
	"factcheck/internal/container"
	"factcheck/internal/migration"

	"github.com/joho/godotenv"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "List the migration steps without touching the database")
	flag.Parse()

	runner := migration.NewRunner()
	if *dryRun {
		fmt.Printf("run history schema %s\n", runner.Version())
		for i, name := range runner.Steps() {
			fmt.Printf("%2d. %s\n", i+1, name)
		}
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	defer c.Shutdown(ctx)

	db, err := c.InitDatabase(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	c.Logger.Info("run history schema %s is up to date (%d steps)", runner.Version(), len(runner.Steps()))
}
