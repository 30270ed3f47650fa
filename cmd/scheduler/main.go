package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/fintrack/scheme-engine/internal/channel"
	"github.com/fintrack/scheme-engine/internal/config"
	"github.com/fintrack/scheme-engine/internal/dispatch"
	"github.com/fintrack/scheme-engine/internal/notify"
	"github.com/fintrack/scheme-engine/internal/repository"
	"github.com/fintrack/scheme-engine/internal/service"
)

func main() {
	log.Println("Starting scheme scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	holderRepo := repository.NewHolderRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	eventLogRepo := repository.NewEventLogRepository(db)

	policy := notify.NewPolicy(cfg.Business.GraceWeeks, cfg.Business.CurrencySymbol, cfg.Business.AppName)
	dispatcher := dispatch.New(
		holderRepo, schemeRepo, paymentRepo, eventLogRepo,
		initChannel(cfg, logger),
		policy,
		dispatch.Config{
			DispatchTimeout: cfg.GetDispatchTimeout(),
			TickConcurrency: cfg.Business.TickConcurrency,
		},
		logger,
	)

	reportService := service.NewReportService(paymentRepo, eventLogRepo, redisClient, logger)
	backupService := service.NewBackupService(eventLogRepo, logger)

	// Initialize cron scheduler in the configured timezone
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))

	// Schedule tasks
	setupCronJobs(c, cfg, dispatcher, reportService, backupService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func initChannel(cfg *config.Config, logger *slog.Logger) channel.Channel {
	if cfg.Channel.WhatsAppURL != "" {
		return channel.NewWhatsAppChannel(cfg.Channel.WhatsAppURL, cfg.Channel.WhatsAppToken, cfg.GetDispatchTimeout())
	}
	return channel.NewLogChannel(logger)
}

func setupCronJobs(
	c *cron.Cron,
	cfg *config.Config,
	dispatcher *dispatch.Dispatcher,
	reportService *service.ReportService,
	backupService *service.BackupService,
) {
	// Weekly reminder tick
	_, err := c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		log.Println("Running payment reminder tick...")
		results, err := dispatcher.OnScheduledTick(context.Background(), time.Now())
		if err != nil {
			log.Printf("Reminder tick finished with errors: %v", err)
		}
		log.Printf("Reminder tick processed %d holders", len(results))
	})
	if err != nil {
		log.Printf("Error scheduling reminder tick: %v", err)
	}

	// Monthly aggregate report for the month that just ended
	_, err = c.AddFunc(cfg.Scheduler.ReportSpec, func() {
		log.Println("Running monthly report job...")
		previousMonth := time.Now().AddDate(0, -1, 0)
		if _, err := reportService.GenerateMonthlyReport(context.Background(), previousMonth); err != nil {
			log.Printf("Error generating monthly report: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling monthly report job: %v", err)
	}

	// Daily backup marker
	_, err = c.AddFunc(cfg.Scheduler.BackupSpec, func() {
		log.Println("Running daily backup job...")
		if _, err := backupService.CreateDailyBackup(context.Background()); err != nil {
			log.Printf("Error recording daily backup: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling daily backup job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
