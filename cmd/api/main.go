package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsletter-hub/config"
	_ "newsletter-hub/docs" // Swagger docs
	"newsletter-hub/internal/httpserver"
	"newsletter-hub/internal/newsletter/normalize"
	"newsletter-hub/internal/newsletter/title"
	"newsletter-hub/internal/newsletter/usecase"
	"newsletter-hub/internal/task"
	"newsletter-hub/internal/task/repository"
	boardRepo "newsletter-hub/internal/task/repository/taskboard"
	"newsletter-hub/internal/upload"
	"newsletter-hub/pkg/gcalendar"
	"newsletter-hub/pkg/gemini"
	"newsletter-hub/pkg/jpdate"
	"newsletter-hub/pkg/log"
	"newsletter-hub/pkg/ocr"
	"newsletter-hub/pkg/taskboard"
)

// @title       Newsletter Hub API
// @description Extracts and normalizes Japanese school newsletters into canonical records and family tasks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Newsletter Hub...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Pipeline components
	var llm gemini.IGemini
	if cfg.Gemini.APIKey != "" {
		client := gemini.NewClient(cfg.Gemini.APIKey)
		if cfg.Gemini.Model != "" {
			client.SetModel(cfg.Gemini.Model)
		}
		llm = client
		logger.Infof(ctx, "Gemini initialized (model=%s)", client.Model())
	} else {
		logger.Warn(ctx, "GEMINI_API_KEY missing: OCR-only uploads will degrade to defaults")
	}

	weights := title.DefaultWeights()
	if cfg.Pipeline.TitleMinScore > 0 {
		weights.MinScore = cfg.Pipeline.TitleMinScore
	}
	if cfg.Pipeline.TitleMaxLen > 0 {
		weights.MaxTitleLen = cfg.Pipeline.TitleMaxLen
	}

	dates := jpdate.NewResolver()
	titles := title.NewEngine(weights)
	norm := normalize.New(dates)
	tasks := task.NewGenerator(dates)

	// Task board (optional)
	var board repository.BoardRepository
	if cfg.TaskBoard.URL != "" && cfg.TaskBoard.AccessToken != "" {
		board = boardRepo.New(taskboard.NewClient(cfg.TaskBoard.URL, cfg.TaskBoard.AccessToken), logger)
		logger.Infof(ctx, "Task board initialized: %s", cfg.TaskBoard.URL)
	} else {
		logger.Warn(ctx, "Task board not configured, derived tasks stay local")
	}

	// Google Calendar (optional)
	var cal usecase.CalendarClient
	if cfg.GoogleCalendar.Enabled && cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			cal = calendarClient
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	newsletterUC := usecase.New(logger, llm, titles, norm, dates, tasks, board, cal)

	// OCR pool (optional)
	var ocrPool *ocr.Pool
	if cfg.OCR.URL != "" {
		ocrPool = ocr.NewPool(ocr.NewHTTPRecognizer(cfg.OCR.URL), cfg.OCR.PoolSize)
		defer ocrPool.Close()
		logger.Infof(ctx, "OCR initialized: %s (pool=%d)", cfg.OCR.URL, cfg.OCR.PoolSize)
	} else {
		logger.Warn(ctx, "OCR not configured, image scan route disabled")
	}

	// Upload guard (optional)
	var guard *upload.Guard
	if cfg.Upload.Enabled {
		guard = upload.NewGuard(upload.Config{
			Secret:          cfg.Upload.Secret,
			AllowedIPs:      cfg.Upload.AllowedIPs,
			RateLimitPerMin: cfg.Upload.RateLimitPerMin,
		})
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		InternalKey:  cfg.HTTPServer.InternalKey,
		NewsletterUC: newsletterUC,
		UploadGuard:  guard,
		OCRPool:      ocrPool,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
