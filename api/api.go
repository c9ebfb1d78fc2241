package main

import (
	"context"
	"errors"
	"gotierlist/api/cache"
	grpcserver "gotierlist/api/grpc"
	"gotierlist/api/modules"
	cacherepo "gotierlist/api/repositories/cache"
	"gotierlist/api/routes"
	"gotierlist/pkg/config"
	"gotierlist/pkg/database"
	"gotierlist/pkg/opgg"
	"gotierlist/pkg/redis"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultsTimeout = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load the configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("Couldn't connect to redis: %v", err)
	}
	defer redisClient.Close()

	championCacheDeps := &cache.ChampionCacheDeps{Redis: redisClient}

	// The database is only the backup of the assets, the api runs without it.
	if cfg.Database.Enabled {
		db, err := database.NewConnection(cfg.Database.URL)
		if err != nil {
			log.Printf("Running without the database backup: %v", err)
		} else {
			championCacheDeps.Repository = cacherepo.NewCacheRepository(db)
		}
	}

	// Preload the cache.
	championCache := cache.NewChampionCache(ctx, championCacheDeps)
	if err := championCache.Initialize(ctx); err != nil {
		log.Printf("Couldn't preload the champion cache: %v", err)
	}

	opggClient, err := opgg.NewClient(&opgg.ClientDeps{
		BaseURL:       cfg.Opgg.BaseURL,
		Timeout:       cfg.Opgg.Timeout,
		Resolver:      cache.NewResolver(championCache, cfg.DDragon.BaseURL),
		DefaultRegion: cfg.Opgg.DefaultRegion,
		DefaultTier:   cfg.Opgg.DefaultTier,
		CacheSize:     cfg.Opgg.CacheSize,
	})
	if err != nil {
		log.Fatalf("Couldn't create the op.gg client: %v", err)
	}
	opggClient.Start()
	defer opggClient.Close()

	// Load the default tierlists, a failure only leaves the default endpoint empty.
	defaultsCtx, cancelDefaults := context.WithTimeout(ctx, defaultsTimeout)
	if err := opggClient.InitDefaultTiers(defaultsCtx); err != nil {
		log.Printf("Couldn't load every default tierlist: %v", err)
	}
	cancelDefaults()

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		Config:        cfg,
		Redis:         redisClient,
		ChampionCache: championCache,
		Opgg:          opggClient,
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(gin.Default())
	router.SetupRoutes(
		module.TierlistHandler,
		module.ChampionHandler,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Api.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Printf("Running the api on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve the api: %v", err)
		}
	}()

	// Start the gRPC health server.
	healthServer := grpcserver.NewServer()
	list, err := net.Listen("tcp", ":"+cfg.Api.GRPCPort)
	if err != nil {
		log.Fatalf("Couldn't start the tcp server: %v", err)
	}
	go func() {
		if err := healthServer.Serve(list); err != nil {
			log.Printf("Failed to serve grpc: %v", err)
		}
	}()

	// Shutdown everything.
	<-ctx.Done()
	log.Println("Shutting down...")

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Couldn't shutdown the api gracefully: %v", err)
	}
}
