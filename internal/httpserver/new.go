package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"newsletter-hub/internal/newsletter"
	"newsletter-hub/internal/upload"
	"newsletter-hub/pkg/log"
	"newsletter-hub/pkg/ocr"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	internalKey string

	newsletterUC newsletter.UseCase
	uploadGuard  *upload.Guard
	ocrPool      *ocr.Pool
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	InternalKey string

	NewsletterUC newsletter.UseCase
	UploadGuard  *upload.Guard
	OCRPool      *ocr.Pool
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.Default(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		internalKey:  cfg.InternalKey,
		newsletterUC: cfg.NewsletterUC,
		uploadGuard:  cfg.UploadGuard,
		ocrPool:      cfg.OCRPool,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.newsletterUC == nil {
		return errors.New("newsletter usecase is required")
	}
	return nil
}
