package main

import (
	"log"

	"github.com/weatherml/weather-prediction-service/internal/config"
	"github.com/weatherml/weather-prediction-service/internal/dataset"
	"github.com/weatherml/weather-prediction-service/internal/training"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rows, err := dataset.Load(cfg.DatasetFile)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	if len(rows) == 0 {
		log.Fatalf("dataset %s is empty; run weather-ml-collector or generate-sample-data first", cfg.DatasetFile)
	}
	log.Printf("INFO: loaded %d rows from %s", len(rows), cfg.DatasetFile)

	trainer := training.New(training.DefaultConfig(), cfg.ArtifactPaths())
	report, err := trainer.TrainAll(rows)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	log.Printf("INFO: temperature model: %s (MAE %.3f, RMSE %.3f, R2 %.3f)",
		report.Temperature.Algorithm, report.Temperature.MAE, report.Temperature.RMSE, report.Temperature.R2)
	log.Printf("INFO: weather classifier: accuracy %.3f over %d classes",
		report.Weather.Accuracy, len(report.Weather.Classes))
	log.Printf("INFO: humidity model: MAE %.3f, RMSE %.3f",
		report.Humidity.MAE, report.Humidity.RMSE)
	log.Printf("INFO: artifacts written to %s; restart the serving process to pick them up", cfg.ModelDir)
}
