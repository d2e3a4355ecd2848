//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	goredis "github.com/redis/go-redis/v9"

	server "staynest/internal/adapters/http_server"
	redisad "staynest/internal/adapters/redis"
	"staynest/internal/app"
	"staynest/internal/storage/fsrepo"
)

const hotelPayload = `{
	"title": "E2E Hotel",
	"description": "End to end.",
	"guestCount": 4,
	"bedroomCount": 2,
	"bathroomCount": 2,
	"amenities": ["WiFi"],
	"hostInfo": "Host",
	"address": "1 E2E Street",
	"latitude": 41.0,
	"longitude": 29.0,
	"rooms": []
}`

// Full stack against a real Redis: record store on disk, cache in the
// container, handlers over both. Verifies that mutations invalidate the
// cached read models.
func TestHTTP_EndToEnd_CacheInvalidation(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := "127.0.0.1:" + resource.GetPort("6379/tcp")
	if err := pool.Retry(func() error {
		c := goredis.NewClient(&goredis.Options{Addr: addr})
		defer c.Close()
		return c.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	repo, err := fsrepo.New(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	cache := redisad.New(addr, "", 0)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Q:              app.NewQueryService(repo, cache, time.Minute),
		C:              app.NewCommandService(repo, cache),
		ImagesDir:      t.TempDir(),
		RoomImagesDir:  t.TempDir(),
		MaxUploadBytes: 8 << 20,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// create
	res, err := http.Post(ts.URL+"/hotels", "application/json", strings.NewReader(hotelPayload))
	if err != nil {
		t.Fatalf("POST /hotels: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	res.Body.Close()

	get := func() map[string]any {
		t.Helper()
		res, err := http.Get(ts.URL + "/hotels/e2e-hotel")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("get status %d", res.StatusCode)
		}
		var body map[string]any
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body
	}

	// first read from disk, second from the cache
	if got := get()["title"]; got != "E2E Hotel" {
		t.Fatalf("title: %v", got)
	}
	_ = get()

	// update must evict the cached record so the next read is fresh
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/hotels/1", strings.NewReader(`{"title":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	ures, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	if ures.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(ures.Body)
		t.Fatalf("update status %d: %s", ures.StatusCode, b)
	}
	ures.Body.Close()

	body := get()
	if body["title"] != "Renamed" {
		t.Fatalf("stale cache after update: %v", body["title"])
	}
	if body["slug"] != "e2e-hotel" {
		t.Fatalf("slug changed on update: %v", body["slug"])
	}
}
