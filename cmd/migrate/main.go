package main

import (
	"context"       // Import context
	"encoding/json" // Ingredient fixture format
	"flag"          // Command line flags
	"os"            // File access

	"foodgram/internal/config"  // Custom import path (Config)
	"foodgram/internal/db"      // Custom import path (Database)
	"foodgram/internal/domain"  // Models
	"foodgram/internal/service" // Ingredient import
	"foodgram/internal/store"   // Repository

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration
func main() {
	ingredients := flag.String("ingredients", "", "JSON file of {name, measurement_unit} objects to load")
	flag.Parse()

	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	gdb, err := db.Open(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), Debug: cfg.DBDebug})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	if *ingredients == "" {
		return
	}
	items, err := readIngredients(*ingredients)
	if err != nil {
		logrus.Fatalf("failed to read ingredients: %v", err)
	}
	svc := service.New(service.Options{Store: store.New(gdb)})
	n, err := svc.ImportIngredients(context.Background(), items)
	if err != nil {
		logrus.Fatalf("ingredient import failed: %v", err)
	}
	logrus.WithFields(logrus.Fields{"file": *ingredients, "inserted": n}).Info("Ingredients loaded")
}

func readIngredients(path string) ([]domain.Ingredient, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []domain.Ingredient
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
