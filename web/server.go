package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/chat"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/config"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/web/handlers"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/web/middleware"
)

type Server struct {
	router      *gin.Engine
	chatService *chat.Service
	store       *kb.Store
	syncer      *kb.Syncer
	rateLimiter *middleware.SessionRateLimiter
	logger      *zap.Logger
	config      *config.Config
}

func NewServer(chatService *chat.Service, store *kb.Store, syncer *kb.Syncer, logger *zap.Logger, config *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		// Add logger to context
		c.Set("logger", logger)
		c.Next()
	})
	router.Use(middleware.SessionMiddleware())

	server := &Server{
		router:      router,
		chatService: chatService,
		store:       store,
		syncer:      syncer,
		rateLimiter: middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
			MessagesPerMinute: config.RateLimitMessagesPerMin,
			BurstSize:         config.RateLimitBurstSize,
		}, logger),
		logger: logger,
		config: config,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	chatHandler := handlers.NewChatHandler(s.chatService, s.logger)
	kbHandler := handlers.NewKBHandler(s.store, s.syncer, s.config, s.logger)

	s.router.POST("/chat", middleware.RateLimitMiddleware(s.rateLimiter), chatHandler.SendMessage)
	s.router.POST("/chat/stop", chatHandler.StopGeneration)
	s.router.POST("/chat/reset", chatHandler.ResetConversation)
	s.router.GET("/chat/history", chatHandler.History)

	s.router.GET("/kb/status", kbHandler.Status)
	s.router.POST("/kb/sync", kbHandler.Sync)
	s.router.POST("/kb/clear", kbHandler.Clear)
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.WebPort)
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	s.rateLimiter.Stop()
	return srv.Shutdown(context.Background())
}
