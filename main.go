package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/bot"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/bot/handlers"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/config"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/interfaces"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/services"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting FatSecret Exporter Bot...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	log.Println("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sessionStore interfaces.SessionStoreInterface
	switch cfg.State.Backend {
	case config.StateBackendRedis:
		redisStore, err := session.NewRedisStore(cfg.State.RedisHost, cfg.State.RedisPort)
		if err != nil {
			log.Fatalf("Failed to connect session store: %v", err)
		}
		defer redisStore.Close()
		sessionStore = redisStore
	default:
		fileStore := session.NewFileStore(cfg.State.FilePath)
		fileStore.Load()
		sessionStore = fileStore
	}
	log.Println("Session store ready")

	sheetsSvc, err := services.NewSheetsService(ctx, cfg.Google.ServiceAccountEmail, cfg.Google.ServiceAccountKey)
	if err != nil {
		log.Fatalf("Failed to create sheets service: %v", err)
	}
	reportSvc := services.NewReportService()
	log.Println("Services initialized successfully")

	telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{
		SessionStore:        sessionStore,
		ReportSvc:           reportSvc,
		SheetsSvc:           sheetsSvc,
		ServiceAccountEmail: cfg.Google.ServiceAccountEmail,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Println("Bot initialized successfully")

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Bot stopped with error: %v", err)
			os.Exit(1)
		}
	}()

	log.Println("Bot is running. Press Ctrl+C to stop.")
	wg.Wait()
}
