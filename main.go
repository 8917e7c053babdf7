package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yourorg/listings-api/blobstore"
	"github.com/yourorg/listings-api/geocode"
	httpapi "github.com/yourorg/listings-api/http"
	"github.com/yourorg/listings-api/internal/auth"
	"github.com/yourorg/listings-api/internal/env"
	"github.com/yourorg/listings-api/internal/events"
	"github.com/yourorg/listings-api/internal/ingest"
	"github.com/yourorg/listings-api/internal/invalidate"
	"github.com/yourorg/listings-api/internal/logger"
	"github.com/yourorg/listings-api/internal/redisx"
	"github.com/yourorg/listings-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(env.Get("LOG_LEVEL", "info"))
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer log.Sync()

	port := env.GetInt("PORT", 4005)
	dsn := env.Must("PG_DSN")
	jwtSecret := []byte(env.Must("JWT_SECRET"))

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatal("postgres open failed", zap.Error(err))
	}
	defer st.DB.Close()

	bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := st.Ping(bootCtx); err != nil {
		log.Fatal("postgres ping failed", zap.Error(err))
	}
	if err := st.Migrate(bootCtx); err != nil {
		log.Fatal("postgres migrate failed", zap.Error(err))
	}
	cancel()

	// Redis is optional: without it the GET endpoints skip the cache.
	rdb := redisx.New(env.Get("REDIS_ADDR", "localhost:6379"), env.Get("REDIS_PASSWORD", ""), 0)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, listing cache disabled", zap.Error(err))
		rdb = nil
	}
	pingCancel()

	geocoder := geocode.NewClient(env.Must("GEOCODER_API_KEY"))
	if base := env.Get("GEOCODER_BASE_URL", ""); base != "" {
		geocoder.BaseURL = base
	}
	uploader := blobstore.NewClient(env.Must("BLOB_STORE_API_KEY"), env.Must("BLOB_STORE_URL"))

	pipe := &ingest.Pipeline{
		Store:    st,
		Geocoder: geocoder,
		Uploader: uploader,
		Log:      log,
	}

	cacheTTL := time.Duration(env.GetInt("LISTING_CACHE_TTL_SECONDS", 300)) * time.Second
	cache := httpapi.NewListingCache(rdb, cacheTTL)

	pub := events.NewInMemory(256)
	inv := invalidate.New(256, 2, func(ctx context.Context, j invalidate.Job) {
		cache.Del(ctx, j.Kind, j.ID)
	})
	go func() {
		for evt := range pub.SubscribeListingUpdated() {
			inv.Enqueue(invalidate.Job{Kind: evt.Kind, ID: evt.ID})
		}
	}()

	respond := httpapi.Responder{
		Log:                  log,
		ExposeInternalErrors: env.GetBool("EXPOSE_INTERNAL_ERRORS", false),
	}
	authed := auth.Middleware(jwtSecret)

	router := BuildRouter(RouterDeps{
		Properties: httpapi.PropertyDeps{Pipeline: pipe, Auth: authed, Cache: cache, Events: pub, Respond: respond},
		Projects:   httpapi.ProjectDeps{Pipeline: pipe, Auth: authed, Cache: cache, Events: pub, Respond: respond},
		Builders:   httpapi.BuilderDeps{Store: st, Respond: respond},
		Respond:    respond,
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info("listings api listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, logger.Middleware(log)(router)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
