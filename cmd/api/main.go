package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	server "staynest/internal/adapters/http_server"
	"staynest/internal/adapters/observability"
	redisad "staynest/internal/adapters/redis"
	"staynest/internal/app"
	"staynest/internal/shared"
	"staynest/internal/storage/fsrepo"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// storage: records dir plus the static-served upload dirs
	repo, err := fsrepo.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open record store failed")
	}
	for _, dir := range []string{cfg.ImagesDir, cfg.RoomImagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("create upload dir failed")
		}
	}
	log.Info().Str("data", cfg.DataDir).Msg("record store ready")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	c := app.NewCommandService(repo, cache)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:              q,
		C:              c,
		ImagesDir:      cfg.ImagesDir,
		RoomImagesDir:  cfg.RoomImagesDir,
		UploadLimiter:  rate.NewLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadRPS),
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
