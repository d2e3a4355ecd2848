package shared

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// DataDir holds one JSON file per hotel record.
	DataDir string
	// PublicDir is the static-served root; uploaded images land in
	// subdirectories of it.
	PublicDir     string
	ImagesDir     string
	RoomImagesDir string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// UploadRPS caps image-upload requests per second.
	UploadRPS int
	// MaxUploadBytes caps a single multipart upload body.
	MaxUploadBytes int64
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":5000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DataDir:        env("DATA_DIR", filepath.Join("data", "hotels")),
		PublicDir:      env("PUBLIC_DIR", "public"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		UploadRPS:      atoi("UPLOAD_RPS", 10),
		MaxUploadBytes: int64(atoi("MAX_UPLOAD_MB", 32)) << 20,
	}
	c.ImagesDir = filepath.Join(c.PublicDir, "images")
	c.RoomImagesDir = filepath.Join(c.PublicDir, "roomImages")
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
