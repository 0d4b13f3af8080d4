package main

import (
	"context"
	"log"

	"foodvision/config"
	"foodvision/routes"
	"foodvision/services"
	"foodvision/store"
	"foodvision/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open meal store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	// AWS-backed helpers are optional; the core works without them.
	var rek *services.RekognitionService
	if cfg.AWSRegion != "" {
		rek, err = services.NewRekognitionService(ctx)
		if err != nil {
			log.Printf("rekognition disabled: %v", err)
			rek = nil
		}
	}
	var uploader *utils.S3Uploader
	if cfg.S3Bucket != "" {
		uploader, err = utils.NewS3Uploader(ctx)
		if err != nil {
			log.Printf("photo upload disabled: %v", err)
			uploader = nil
		}
	}

	hub := services.NewRealtimeHub()
	deps := routes.Deps{
		Config:   cfg,
		Meals:    services.NewMealService(st, hub),
		Stats:    services.NewStatsService(st),
		Vision:   services.NewVisionService(cfg.VisionAPIURL, cfg.VisionAPIKey, rek),
		Hub:      hub,
		Uploader: uploader,
	}

	r := routes.SetupRouter(deps)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// openStore selects the persistence backend. The SQL store and the file
// store satisfy the same contract, so everything above this call is
// backend-agnostic.
func openStore(cfg *config.Config) (store.MealStore, error) {
	switch cfg.StoreBackend {
	case "postgres":
		return store.OpenSQL("postgres", cfg.PostgresDSN)
	case "file":
		return store.OpenFile(cfg.MealsFile)
	default:
		return store.OpenSQL("sqlite", cfg.SQLitePath)
	}
}
