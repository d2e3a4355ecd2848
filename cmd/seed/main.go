// Command seed bulk-loads hotel records from a JSON fixture file into the
// record store, with a bounded worker pool. Useful for first-run data and
// load testing.
//
//	seed -file fixtures/hotels.json -workers 8
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staynest/internal/adapters/observability"
	"staynest/internal/app"
	"staynest/internal/domain"
	"staynest/internal/shared"
	"staynest/internal/storage/fsrepo"
)

func main() {
	file := flag.String("file", "fixtures/hotels.json", "JSON array of hotel payloads")
	workers := flag.Int("workers", 8, "concurrent creations")
	flag.Parse()

	_ = godotenv.Load()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	b, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read fixture failed")
	}
	var hotels []domain.Hotel
	if err := json.Unmarshal(b, &hotels); err != nil {
		log.Fatal().Err(err).Msg("decode fixture failed")
	}

	repo, err := fsrepo.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open record store failed")
	}
	cmds := app.NewCommandService(repo, nil)

	log.Info().Int("hotels", len(hotels)).Int("workers", *workers).Msg("seeding")

	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(*workers))
	var wg sync.WaitGroup

	for _, h := range hotels {
		h := h
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			created, err := cmds.Create(ctx, h)
			if err != nil {
				log.Warn().Str("title", h.Title).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int("id", created.ID).Str("slug", created.Slug).Msg("seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
