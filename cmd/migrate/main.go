package main

import (
	"context"
	"log"
	"os"
	"time"

	"evalreport/adapters/db/hierarchy"
	"evalreport/internal/migration"
)

// Copies the message tree from a SQLite database into postgres so that
// enrichment can run against a shared server.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <sqlite_db_file> <postgres_url>")
	}

	sqlitePath := os.Args[1]
	postgresURL := os.Args[2]

	log.Printf("Starting migration from %s to postgres", sqlitePath)

	ctx := context.Background()
	start := time.Now()

	if _, err := os.Stat(sqlitePath); err != nil {
		log.Fatalf("SQLite database not found: %v", err)
	}
	source, err := hierarchy.Open(ctx, hierarchy.DriverSQLite, sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open source database: %v", err)
	}
	defer source.Close()

	target, err := hierarchy.Open(ctx, hierarchy.DriverPostgres, postgresURL)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer target.Close()

	var runner migration.Migrator = migration.NewRunner()
	if err := runner.Run(ctx, target.DB()); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Printf("Schema %s ready", runner.Version())

	migrated := 0
	skipped := 0
	err = source.Messages(ctx, func(m hierarchy.Message) error {
		if err := target.SaveMessage(ctx, m); err != nil {
			log.Printf("Failed to copy message %s: %v", m.ID, err)
			skipped++
			return nil
		}
		migrated++
		if migrated%1000 == 0 {
			log.Printf("Copied %d messages", migrated)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to read messages: %v", err)
	}

	log.Printf("Migration complete: %d copied, %d skipped in %v", migrated, skipped, time.Since(start))
}
