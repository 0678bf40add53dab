package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"qaplatform/internal/config"
	"qaplatform/internal/database"
	"qaplatform/internal/handler"
	"qaplatform/internal/model"
	"qaplatform/internal/queue"
	"qaplatform/internal/repository"
	"qaplatform/internal/router"
	"qaplatform/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()

	// Drains notification.created into logs/notifications.log. Runs for
	// the life of the process and survives broker restarts.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	questions := repository.NewQuestionRepo(db)
	answers := repository.NewAnswerRepo(db)
	votes := repository.NewVoteRepo(db)
	tags := repository.NewTagRepo(db)
	notifications := repository.NewNotificationRepo(db)

	notifier := service.NewNotificationService(notifications, func(ctx context.Context, n model.Notification) error {
		return queue.PublishNotificationCreated(ctx, queue.NotificationCreatedEvent{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Type:           n.Type,
			Title:          n.Title,
			Message:        n.Message,
			Link:           n.Link,
			CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	})
	voteSvc := service.NewVoteService(votes, users.AddReputation)
	acceptSvc := service.NewAcceptService(answers, notifier)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Users:         handler.NewUserHandler(users),
		Questions:     handler.NewQuestionHandler(questions, answers, votes),
		Answers:       handler.NewAnswerHandler(answers, questions, acceptSvc, notifier),
		Votes:         handler.NewVoteHandler(voteSvc),
		Tags:          handler.NewTagHandler(tags),
		Notifications: handler.NewNotificationHandler(notifications),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
