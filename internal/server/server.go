package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/ai"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/config"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/handler"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/identity"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/logger"
	appmw "github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/middleware"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			return strings.HasSuffix(u.Hostname(), "vercel.app"), nil
		},
	}))

	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID)
	if err != nil {
		return nil, err
	}
	directory := identity.NewDirectoryFromClient(authMw.Client())

	adRepo := repository.NewAdRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	adSvc := service.NewAdService(adRepo, catRepo)
	convSvc := service.NewConversationService(convRepo, msgRepo, adRepo, directory)
	msgSvc := service.NewMessageService(msgRepo, convRepo)

	adHandler := handler.NewAdHandler(adSvc)
	catHandler := handler.NewCategoryHandler(adSvc)
	convHandler := handler.NewConversationHandler(convSvc, msgSvc)
	msgHandler := handler.NewMessageHandler(msgSvc)
	userHandler := handler.NewUserHandler(directory)
	aiHandler := handler.NewAIHandler(adSvc, ai.NewAssistant(cfg.GeminiModel), cfg.GeminiAPIKey != "")

	var uploadHandler *handler.UploadHandler
	if cfg.StorageBucket != "" {
		uploader, err := storage.NewUploader(ctx, cfg.StorageBucket)
		if err != nil {
			logger.Warn().Err(err).Msg("storage init failed; uploads disabled")
		} else {
			uploadHandler = handler.NewUploadHandler(uploader)
		}
	}
	if uploadHandler == nil {
		uploadHandler = handler.NewUploadHandler(nil)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.GET("/ads", adHandler.List)
	api.GET("/ads/:id", adHandler.Get)
	api.GET("/categories", catHandler.List)
	api.GET("/users/:uid/public", userHandler.GetPublic)

	api.POST("/ads", adHandler.Create, authMw.RequireAuth)
	api.PUT("/ads/:id", adHandler.Update, authMw.RequireAuth)
	api.GET("/me/ads", adHandler.ListMine, authMw.RequireAuth)
	api.POST("/uploads", uploadHandler.Upload, authMw.RequireAuth)
	api.POST("/ads/:id/ask", aiHandler.AskAd, authMw.RequireAuth)

	api.POST("/ads/:id/contact", convHandler.Contact, authMw.RequireAuth)
	api.GET("/ads/:id/conversations", convHandler.ListByAd, authMw.RequireAuth)
	api.GET("/conversations", convHandler.List, authMw.RequireAuth)
	api.GET("/conversations/:id", convHandler.Get, authMw.RequireAuth)
	api.GET("/conversations/:id/messages", convHandler.SyncMessages, authMw.RequireAuth)
	api.POST("/conversations/:id/messages", convHandler.CreateMessage, authMw.RequireAuth)
	api.POST("/conversations/:id/read", convHandler.MarkRead, authMw.RequireAuth)
	api.POST("/messages/:id/update", msgHandler.Update, authMw.RequireAuth)
	api.POST("/messages/:id/delete", msgHandler.Delete, authMw.RequireAuth)

	return &Server{e: e}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
