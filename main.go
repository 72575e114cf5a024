package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/chat"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/config"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/llmclient"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/search"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/web"
)

func main() {
	ctx := context.Background()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	clusters := search.DefaultClusters()
	if cfg.ClustersFile != "" {
		clusters, err = search.LoadClusters(cfg.ClustersFile)
		if err != nil {
			logger.Fatal("Failed to load synonym clusters", zap.Error(err))
		}
	}

	store := kb.NewStore(logger)
	syncer := kb.NewSyncer(cfg, store, logger)

	if cfg.SyncOnStart {
		syncCtx, cancel := context.WithTimeout(ctx, cfg.SyncTimeout)
		report, err := syncer.Sync(syncCtx)
		cancel()
		if err != nil {
			logger.Warn("Initial knowledge base sync failed", zap.Error(err))
		} else {
			logger.Info("Knowledge base synced",
				zap.Int("processed", report.Processed),
				zap.Int("skipped", report.Skipped))
		}
	}

	engine := search.NewEngine(clusters, logger)
	assembler, err := search.NewAssembler(engine, cfg.DocumentLimit, cfg.StructuredTopN, cfg.ContextCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize context assembler", zap.Error(err))
	}

	llm := llmclient.New(cfg, logger)
	chatService := chat.NewService(cfg, store, assembler, llm, logger)

	webServer := web.NewServer(chatService, store, syncer, logger, cfg)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting LibSys support web server", zap.Int("port", cfg.WebPort))
	if err := webServer.Start(ctx); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
