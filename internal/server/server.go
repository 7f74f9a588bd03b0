package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/ridwanfathin/invoice-explorer-service/docs"
	"github.com/ridwanfathin/invoice-explorer-service/internal/config"
	"github.com/ridwanfathin/invoice-explorer-service/internal/handler"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"github.com/ridwanfathin/invoice-explorer-service/internal/middleware"
	"github.com/ridwanfathin/invoice-explorer-service/internal/model"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const serviceName = "invoice-explorer-service"

// Server represents the HTTP server of the invoice explorer
type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	fileHandler    *handler.FileHandler
	invoiceHandler *handler.InvoiceHandler
	uploadLimiter  *middleware.RateLimiter
	config         *config.Config
	closers        []func()
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, fileHandler *handler.FileHandler, invoiceHandler *handler.InvoiceHandler) *Server {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(configureCORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestResponseLogger(middleware.LoggerConfig{
		Format: cfg.LogFormat,
	}))

	server := &Server{
		router:         router,
		config:         cfg,
		fileHandler:    fileHandler,
		invoiceHandler: invoiceHandler,
		uploadLimiter:  middleware.NewRateLimiter(cfg.UploadRateLimit, cfg.UploadRateBurst),
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes()

	return server
}

// configureCORS returns a configured CORS middleware
func configureCORS(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	return cors.New(corsConfig)
}

// OnShutdown registers a function run after the HTTP server has stopped
func (s *Server) OnShutdown(fn func()) {
	s.closers = append(s.closers, fn)
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{
			Status:  "ok",
			Service: serviceName,
		})
	})

	if s.config.EnableSwagger {
		// Access the Swagger UI at http://localhost:8080/api-docs/index.html
		swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
		s.router.GET("/api-docs/*any", swaggerHandler)

		s.router.GET("/api-docs", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/api-docs/index.html")
		})
	}

	v1 := s.router.Group("/v1")

	files := v1.Group("/files")
	files.GET("", s.fileHandler.ListFiles)
	files.POST("/upload", s.uploadLimiter.Limit(), s.fileHandler.UploadFile)
	files.GET("/:fileName", s.invoiceHandler.GetInvoice)
	files.GET("/:fileName/download", s.invoiceHandler.DownloadOriginal)
	files.GET("/:fileName/export", s.invoiceHandler.ExportCurrent)
	files.GET("/:fileName/revisions", s.invoiceHandler.ListRevisions)
	files.POST("/:fileName/sessions", s.invoiceHandler.StartEditing)

	sessions := v1.Group("/sessions")
	sessions.GET("/:sessionId", s.invoiceHandler.GetSession)
	sessions.DELETE("/:sessionId", s.invoiceHandler.CancelEditing)
	sessions.POST("/:sessionId/items", s.invoiceHandler.AddItem)
	sessions.PATCH("/:sessionId/items/:index", s.invoiceHandler.EditItem)
	sessions.DELETE("/:sessionId/items/:index", s.invoiceHandler.DeleteItem)
	sessions.PUT("/:sessionId/other-charges", s.invoiceHandler.SetOtherCharges)
	sessions.POST("/:sessionId/save", s.invoiceHandler.Save)
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.Int("port", s.config.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.runClosers()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server and releases its resources
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.runClosers()
	return err
}

func (s *Server) runClosers() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
