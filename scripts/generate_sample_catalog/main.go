package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Type         string    `json:"type"`
	BundledItems []int64   `json:"bundledItems,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Writes a sample gzipped NDJSON catalog snapshot to data/catalog.ndjson.gz,
// matching the shape the backend exports.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	now := time.Now().UTC()
	products := []product{
		{ID: 1, Name: "Espresso", Price: "2.50", Type: "simple", UpdatedAt: now},
		{ID: 2, Name: "Americano", Price: "2.80", Type: "simple", UpdatedAt: now},
		{ID: 3, Name: "Croissant", Price: "3.20", Type: "simple", UpdatedAt: now},
		{ID: 4, Name: "Flat White", Price: "3.60", Type: "variable", UpdatedAt: now},
		{ID: 5, Name: "Morning Set", Price: "5.50", Type: "bundle", BundledItems: []int64{1, 3}, UpdatedAt: now},
		{ID: 6, Name: "Iced Tea", Price: "2.20", Type: "simple", UpdatedAt: now},
		{ID: 7, Name: "Lemonade", Price: "2.40", Type: "simple", UpdatedAt: now},
	}

	path := filepath.Join(dataDir, "catalog.ndjson.gz")
	if err := writeSnapshot(path, products); err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}

	fmt.Printf("Created %s with %d products\n", path, len(products))
}

func writeSnapshot(path string, products []product) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	encoder := json.NewEncoder(gz)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return err
		}
	}

	return gz.Close()
}
