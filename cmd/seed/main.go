package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"gamestore-backoffice/internal/config"
	"gamestore-backoffice/internal/domain/model"
	pg "gamestore-backoffice/internal/infra/db/postgres"
	"gamestore-backoffice/internal/infra/logging"
	"gamestore-backoffice/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect Postgres
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	catalogUC := usecase.NewCatalogUseCase(pg.NewCatalogRepo(pool), logger)

	// If catalog items already exist, do nothing
	counts, err := catalogUC.List(ctx, model.KindGem, 0, 1)
	if err != nil {
		log.Fatalf("list catalog: %v", err)
	}
	if len(counts) > 0 {
		fmt.Println("Catalog already seeded. No changes.")
		return
	}

	// Seed a few sample items per storefront tab
	seed := []*model.CatalogItem{
		{Kind: model.KindGem, Name: "500 Gems", PriceCents: 4_99, Quantity: 999},
		{Kind: model.KindGem, Name: "1200 Gems", PriceCents: 9_99, Quantity: 999},
		{Kind: model.KindDiamond, Name: "Diamond Pack S", PriceCents: 2_99, Quantity: 999},
		{Kind: model.KindAccount, Name: "Level 60 Account", PriceCents: 120_00, Quantity: 3,
			Attrs: map[string]any{"level": 60, "server": "EU"}},
		{Kind: model.KindBot, Name: "Farm Bot (30 days)", PriceCents: 15_00, Quantity: 50,
			Attrs: map[string]any{"duration_days": 30}},
		{Kind: model.KindOffer, Name: "Starter Bundle", PriceCents: 7_99, Quantity: 100,
			Attrs: map[string]any{"discount_pct": 20}},
	}

	for _, item := range seed {
		created, err := catalogUC.Create(ctx, item)
		if err != nil {
			log.Fatalf("seed %q: %v", item.Name, err)
		}
		fmt.Printf("Seeded %s %q (id=%s)\n", created.Kind, created.Name, created.ID)
	}
	fmt.Println("Seeding complete.")
}
