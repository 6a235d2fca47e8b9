package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soundforge/seller/config"
	HTTPAdapter "github.com/soundforge/seller/internal/adapter/http"
	"github.com/soundforge/seller/internal/adapter/provider/dubbing"
	"github.com/soundforge/seller/internal/adapter/provider/fetcher"
	"github.com/soundforge/seller/internal/adapter/provider/music"
	"github.com/soundforge/seller/internal/adapter/provider/speech"
	"github.com/soundforge/seller/internal/adapter/provider/voice"
	"github.com/soundforge/seller/internal/adapter/source/acp"
	"github.com/soundforge/seller/internal/adapter/storage/bucket"
	memorystore "github.com/soundforge/seller/internal/adapter/storage/memory"
	sqlitestore "github.com/soundforge/seller/internal/adapter/storage/sqlite"
	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/infrastructure/logger"
	"github.com/soundforge/seller/internal/port"
	"github.com/soundforge/seller/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info.Printf("starting seller worker on port %d", cfg.Port)

	languages := domain.NewLanguageCatalog(domain.DefaultLanguages())
	voices := domain.NewDefaultVoiceCatalog()
	validator := domain.NewValidator(languages, voices)

	var claims port.ClaimStore
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			logger.Error.Printf("failed to create data directory: %v", err)
			os.Exit(1)
		}
		store, err := sqlitestore.NewClaimStore(cfg.DataDir)
		if err != nil {
			logger.Error.Printf("failed to open claim store: %v", err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		claims = store
		logger.Info.Printf("using durable claim ledger in %s", cfg.DataDir)
	} else {
		claims = memorystore.NewClaimStore()
		logger.Info.Printf("using in-memory claim ledger")
	}

	artifacts := bucket.New(cfg.StorageEndpoint, cfg.StorageBucket, cfg.StorageRegion, cfg.StorageToken)
	source := acp.New(cfg.SourceBaseURL, cfg.SourceAPIKey)

	dubber := dubbing.New(cfg.DubbingBaseURL, cfg.DubbingAPIKey)
	synthesizer := speech.New(cfg.SpeechBaseURL, cfg.SpeechAPIKey, cfg.SpeechModel)
	generator := music.New(cfg.MusicBaseURL, cfg.MusicAPIKey)
	converter := voice.New(cfg.VoiceBaseURL, cfg.VoiceAPIKey, cfg.VoiceModel)
	audioFetcher := fetcher.New()

	poller := service.NewPoller(cfg.PollInterval, cfg.PollMaxAttempts)

	strategies := map[domain.ServiceKind]service.Strategy{
		domain.ServiceDubbing:         service.NewDubbingStrategy(languages, dubber, artifacts, poller),
		domain.ServiceVoiceover:       service.NewVoiceoverStrategy(voices, synthesizer, artifacts),
		domain.ServiceMusicProduction: service.NewMusicStrategy(generator, artifacts),
		domain.ServiceVoiceRecast:     service.NewRecastStrategy(voices, audioFetcher, converter, artifacts),
	}

	engine := service.NewEngine(source, validator, strategies, claims, cfg.MaxConcurrentJobs)

	server := HTTPAdapter.NewServer(engine)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}

		// Let in-flight fulfillments deliver before exiting.
		engine.Wait()
		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("webhook listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
}
