package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"newsletter-hub/internal/middleware"
	newsletterHTTP "newsletter-hub/internal/newsletter/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")

	if srv.uploadGuard != nil {
		api.Use(srv.uploadGuard.Middleware(srv.l))
		srv.l.Infof(ctx, "Upload guard enabled for /api/v1")
	}

	mw := middleware.New(srv.l, srv.internalKey)

	h := newsletterHTTP.New(srv.l, srv.newsletterUC, srv.ocrPool)
	newsletterHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Newsletter domain registered")
	return nil
}
