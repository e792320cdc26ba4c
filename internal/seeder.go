package internal

import (
	"context"
	"fmt"
	"time"

	postgres_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/postgres"
	"github.com/louissosthenes9/campus-stay-api/internal/configs"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/usecase"
	"github.com/louissosthenes9/campus-stay-api/pkg/postgres"
)

// SeedOptions - что заполнять справочными данными
type SeedOptions struct {
	Amenities    bool
	Universities bool
	Clear        bool
}

// RunSeed заполняет справочники аменит и университетов Танзании
func RunSeed(opts SeedOptions) error {
	if !opts.Amenities && !opts.Universities {
		return fmt.Errorf("nothing to seed: pass -amenities and/or -universities")
	}

	appConfig, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading application configuration: %w", err)
	}
	baseLogger, fluentClient, err := newBaseLogger(appConfig, "seed")
	if err != nil {
		return err
	}
	defer closeFluent(fluentClient)
	logger := baseLogger.WithFields(port.Fields{"component": "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL, MaxConns: 2})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbPool.Close()

	if opts.Amenities {
		amenityRepo, err := postgres_adapter.NewAmenityRepository(dbPool)
		if err != nil {
			return err
		}
		created, total, err := usecase.NewSeedAmenitiesUseCase(amenityRepo).Execute(ctx, opts.Clear)
		if err != nil {
			logger.Error("Failed to seed amenities", err, nil)
			return err
		}
		fmt.Printf("Amenities: %d created, %d total\n", created, total)
	}

	if opts.Universities {
		universityRepo, err := postgres_adapter.NewUniversityRepository(dbPool)
		if err != nil {
			return err
		}
		created, err := usecase.NewSeedUniversitiesUseCase(universityRepo).Execute(ctx, opts.Clear)
		if err != nil {
			logger.Error("Failed to seed universities", err, nil)
			return err
		}
		fmt.Printf("Universities: %d created\n", created)
	}
	return nil
}
