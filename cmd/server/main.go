// cmd/server/main.go
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/cache"
	"github.com/gamedia/editorial-backend/internal/config"
	"github.com/gamedia/editorial-backend/internal/controller"
	"github.com/gamedia/editorial-backend/internal/db"
	"github.com/gamedia/editorial-backend/internal/handler"
	"github.com/gamedia/editorial-backend/internal/logger"
	"github.com/gamedia/editorial-backend/internal/metrics"
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

	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisCache.Close()

	metrics.Register()

	// Repositories
	articleRepo := &repository.ArticleRepository{DB: conn}
	videoRepo := &repository.VideoRepository{DB: conn}
	notificationRepo := &repository.NotificationRepository{DB: conn}
	subscriptionRepo := &repository.SubscriptionRepository{DB: conn}
	contactRepo := &repository.ContactRepository{DB: conn}

	// Newsletter provider
	provider, campaignSender, _ := newsletter.FromConfig(cfg)
	log.Info("newsletter provider configured", zap.String("provider", provider.Name()))

	// Publication pipeline
	dispatcher := &service.CampaignDispatcher{
		Sender:      campaignSender,
		SiteName:    cfg.SenderName,
		FrontendURL: cfg.FrontendURL,
		BackendURL:  cfg.BackendURL,
		Logger:      log,
	}
	trigger := &service.PublicationTrigger{
		Ledger:     notificationRepo,
		Dispatcher: dispatcher,
		Enabled:    cfg.EnableNotifications,
		Logger:     log,
	}

	contentService := &service.ContentService{
		Articles: articleRepo,
		Videos:   videoRepo,
		Trigger:  trigger,
		Cache:    redisCache,
		WPM:      cfg.ReadingSpeedWPM,
		Logger:   log,
	}

	newsletterService := &service.NewsletterService{
		Subscriptions: subscriptionRepo,
		Provider:      provider,
		Logger:        log,
	}

	// Contact notifications go through the broker; the worker binary consumes
	// them. Publishing from here only needs a channel.
	q, err := queue.NewAMQPQueue(cfg.AMQPURL, log)
	if err != nil {
		log.Fatal("queue connection failed", zap.Error(err))
	}
	defer q.Close()

	contactService := &service.ContactService{
		Messages: contactRepo,
		Queue:    q,
		Logger:   log,
	}

	contentController := &controller.ContentController{ContentService: contentService}
	engagementController := &controller.EngagementController{
		NewsletterService: newsletterService,
		ContactService:    contactService,
	}
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.HTTPMiddleware)

	// Content routes
	r.Post("/articles", contentController.CreateArticle)
	r.Get("/articles", contentController.ListArticles)
	r.Get("/articles/{slug}", contentController.GetArticle)
	r.Put("/articles/{id}", contentController.UpdateArticle)
	r.Post("/videos", contentController.CreateVideo)
	r.Get("/videos", contentController.ListVideos)
	r.Get("/videos/{slug}", contentController.GetVideo)
	r.Put("/videos/{id}", contentController.UpdateVideo)

	// Engagement routes
	r.Post("/newsletter/subscribe", engagementController.Subscribe)
	r.Post("/newsletter/unsubscribe", engagementController.Unsubscribe)
	r.Get("/newsletter/stats", engagementController.SubscriptionStats)
	r.Post("/contact", engagementController.SubmitContact)

	// Notification ledger (back office)
	r.Get("/notifications", notificationHandler.ListNotificationsHandler)
	r.Get("/notifications/stats", notificationHandler.NotificationStatsHandler)

	r.Handle("/metrics", metrics.Handler())

	log.Info("server running", zap.String("port", cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
