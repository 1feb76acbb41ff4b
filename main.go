package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"strategy-engine/config"
	httpLayer "strategy-engine/http"
	"strategy-engine/repository"
	"strategy-engine/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	analysisRepo := repository.NewAnalysisRepositoryMemory()

	var cache repository.CacheRepository = repository.NewMockCache()
	if cfg.Redis.Enabled {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr)
		if err := redisCache.Ping(); err != nil {
			log.Printf("Warning: redis unreachable at %s, using in-process cache: %v", cfg.Redis.Addr, err)
		} else {
			cache = redisCache
		}
	}

	analysisService := service.NewAnalysisService(
		cfg.EngineOptions(),
		analysisRepo,
		cache,
		cfg.Redis.CacheTTL.Std(),
	)
	analysisHandler := httpLayer.NewAnalysisHandler(analysisService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow.Std())
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/analysis",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(analysisHandler.Analyze),
		),
	)
	mux.HandleFunc("/healthz", analysisHandler.Health)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
