// Service entry: reads configuration from the environment, initializes
// dependencies and serves the solve API.
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"periplus/internal/logger"
	"periplus/internal/metrics"
	"periplus/internal/routing"
	"periplus/internal/server"
	"periplus/internal/storage"
	periplusapi "periplus/pkg/periplus"
)

func main() {
	_ = godotenv.Load(".env")

	l := logger.Setup()

	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	instancesDir := os.Getenv("INSTANCES_DIR")
	if instancesDir == "" {
		instancesDir = filepath.Join("data", "instances")
	}
	storeKind := os.Getenv("STORE")
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "periplus.db"
	}

	rc := routing.OpenRedisFromEnv()
	var tableCache *routing.TableCache
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(context.Background()).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
		tableCache = routing.NewTableCache(rc, 24*time.Hour)
	}

	client, err := periplusapi.New(periplusapi.Options{
		StoreKind:    storeKind,
		DBPath:       dbPath,
		InstancesDir: instancesDir,
		APIKey:       os.Getenv("NESHAN_API_KEY"),
		TableCache:   tableCache,
	})
	if err != nil {
		l.Error("store_open_error", "err", err)
		os.Exit(1)
	}
	defer client.Close()
	l.Info("store_ready", "kind", storeKind)

	mux := http.NewServeMux()
	apiMux := server.BuildRoutes(client.Solver(), client.Store())
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	s := &http.Server{Addr: addr, Handler: handler}
	l.Info("listening", "addr", addr)
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		l.Error("server_error", "err", err)
		os.Exit(1)
	}
}
