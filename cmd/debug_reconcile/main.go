package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"locale-manager/core/config"
	"locale-manager/core/database"
	"locale-manager/core/extract"
	"locale-manager/core/reconcile"
	"locale-manager/core/record"
	"locale-manager/core/store"
)

// Usage: debug_reconcile <app> <project dir> [text key]
func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: debug_reconcile <app> <project dir> [text key]")
	}
	appID, dir := os.Args[1], os.Args[2]
	var lookup string
	if len(os.Args) > 3 {
		lookup = os.Args[3]
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	targets, err := cfg.Localization.Targets()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Test 1: Extraction
	fmt.Println("=== TEST 1: Extraction ===")
	ex, err := extract.NewProjectExtractor(dir, cfg.Localization.SourceLang)
	if err != nil {
		log.Fatal(err)
	}
	items, err := ex.Extract(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Total source items extracted: %d\n", len(items))
	for _, item := range items {
		if item.Key == lookup {
			fmt.Printf("FOUND in project: key=%s, line=%d, text=%q\n", item.Key, item.Line, item.Text)
		}
	}

	incoming, rejected := extract.FanOut(appID, items, targets)
	fmt.Printf("Fanned out to %d locales: %d records, %d rejected\n", len(targets), len(incoming), len(rejected))

	// Test 2: Stored records
	fmt.Println("\n=== TEST 2: Database Loading ===")
	existing, err := store.New(db).Load(ctx, reconcile.Filter{AppID: appID})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Total stored records loaded: %d\n", len(existing))
	for _, r := range existing {
		if r.TextKey == lookup {
			fmt.Printf("FOUND in DB: key=%s, id=%s, awaiting=%v\n", r.Key(), r.ID, r.IsAwaitingTranslation())
		}
	}

	_, dups := record.Index(existing)
	if len(dups) > 0 {
		fmt.Printf("Stored set has %d duplicate keys, first: %s\n", len(dups), dups[0])
	}

	// Test 3: Dry reconciliation
	fmt.Println("\n=== TEST 3: Reconciliation (no write) ===")
	plan, err := reconcile.NewPlan(ctx, appID, existing, incoming, reconcile.Options{DryRun: true, Parallelism: cfg.Localization.Parallelism})
	if err != nil {
		log.Fatal(err)
	}
	for category, count := range plan.Report.Summary() {
		fmt.Printf("%-10s %d\n", category, count)
	}

	// Save detailed output
	data, _ := json.MarshalIndent(plan.Report, "", "  ")
	os.WriteFile("debug_reconcile.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_reconcile.json for details.")
}
