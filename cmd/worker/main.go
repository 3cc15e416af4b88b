// cmd/worker/main.go
package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/config"
	"github.com/gamedia/editorial-backend/internal/db"
	"github.com/gamedia/editorial-backend/internal/logger"
	"github.com/gamedia/editorial-backend/internal/newsletter"
	"github.com/gamedia/editorial-backend/internal/queue"
	"github.com/gamedia/editorial-backend/internal/repository"
	"github.com/gamedia/editorial-backend/internal/service"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer conn.Close()

	_, _, transactionalSender := newsletter.FromConfig(cfg)

	worker := &service.ContactWorker{
		Messages:   &repository.ContactRepository{DB: conn},
		Sender:     transactionalSender,
		SiteName:   cfg.SenderName,
		AdminEmail: cfg.ContactAdminEmail,
		AdminName:  cfg.ContactAdminName,
		Logger:     log,
	}

	q, err := queue.NewAMQPQueue(cfg.AMQPURL, log)
	if err != nil {
		log.Fatal("queue connection failed", zap.Error(err))
	}
	defer q.Close()

	if err := q.Subscribe(queue.TopicContactNotifications, worker.Process); err != nil {
		log.Fatal("failed to subscribe", zap.Error(err))
	}

	log.Info("worker running, waiting for contact notifications")
	select {}
}
