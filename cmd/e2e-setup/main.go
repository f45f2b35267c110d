package main

import (
	"context"
	"flag"
	"log"

	"gamestore-backoffice/internal/config"
	pg "gamestore-backoffice/internal/infra/db/postgres"
	"gamestore-backoffice/internal/infra/redis"
)

// This script is for setting up a clean, predictable database state
// for manual end-to-end testing of the relay.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// --- Connect to Postgres ---
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 5)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	// --- Connect to Redis ---
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer redisClient.Close()

	log.Println("--- Starting E2E Environment Setup ---")

	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	log.Println("Migrations applied.")

	// Old conversations and anchors would make manual runs non-deterministic.
	_, err = pool.Exec(ctx, `TRUNCATE chat_messages, chat_sessions, telegram_threads`)
	if err != nil {
		log.Fatalf("truncate relay tables: %v", err)
	}
	log.Println("Relay tables truncated.")

	if err := redisClient.FlushDB(ctx); err != nil {
		log.Fatalf("redis flush failed: %v", err)
	}
	log.Println("Redis flushed (anchor cache + rate limits).")

	// One known session so the admin dashboard is not empty on first login.
	_, err = pool.Exec(ctx, `
		INSERT INTO chat_sessions (id, visitor_id, visitor_name, last_message, last_message_type, unread_count)
		VALUES ('conv_e2e_fixture', 'visitor-e2e', 'E2E Tester', 'Hello from the fixture', 'text', 1)`)
	if err != nil {
		log.Fatalf("insert fixture session: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO chat_messages (id, session_id, sender, body, type, read, sent_via)
		VALUES ('01E2EFIXTUREMSG0000000000', 'conv_e2e_fixture', 'visitor', 'Hello from the fixture', 'text', FALSE, 'web')`)
	if err != nil {
		log.Fatalf("insert fixture message: %v", err)
	}
	log.Println("Fixture conversation created: conv_e2e_fixture")

	log.Println("--- E2E Environment Setup Complete ---")
}
