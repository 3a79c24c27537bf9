package main

import (
	"flag"
	"log"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/config"
	"github.com/weatherml/weather-prediction-service/internal/dataset"
)

func main() {
	records := flag.Int("records", 500, "number of sample readings to generate")
	seed := flag.Int64("seed", 42, "random seed; the same seed reproduces the same dataset")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	start := time.Now().UTC().AddDate(0, 0, -30)
	rows := dataset.GenerateSample(*records, cfg.Cities, start, *seed)

	if err := dataset.Write(cfg.DatasetFile, rows); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}

	log.Printf("INFO: wrote %d sample rows for %d cities to %s",
		len(rows), len(cfg.Cities), cfg.DatasetFile)
	log.Println("INFO: you can now run weather-ml-trainer")
}
