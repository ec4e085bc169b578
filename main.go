package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Kabachel/FeedingKittiesBot/internal/bot"
	"github.com/Kabachel/FeedingKittiesBot/internal/bot/handlers"
	"github.com/Kabachel/FeedingKittiesBot/internal/config"
	"github.com/Kabachel/FeedingKittiesBot/internal/database"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
	"github.com/Kabachel/FeedingKittiesBot/internal/repository"
	"github.com/Kabachel/FeedingKittiesBot/internal/scheduler"
	"github.com/Kabachel/FeedingKittiesBot/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting Feeding Kitties Bot")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return
	}
	logger.Info("Database connection established and migrations completed")

	users := repository.NewUserRepository(db)
	cats := repository.NewCatRepository(db)
	tx := repository.NewTxManager(db)

	userService := services.NewUserService(users, tx)
	registrationService := services.NewRegistrationService(tx)
	feedingService := services.NewFeedingService(cats, tx)

	resetScheduler, err := scheduler.New(cfg.ResetSchedule, feedingService)
	if err != nil {
		logger.Error("Failed to create reset scheduler", "error", err)
		return
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{
		UserService:     userService,
		RegistrationSvc: registrationService,
		FeedingSvc:      feedingService,
	})
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resetScheduler.Start()
	defer resetScheduler.Stop()

	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Bot stopped with error", "error", err)
	}
}
