package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelbooking/config"
	"hotelbooking/jobs"
	"hotelbooking/queue"
	"hotelbooking/routes"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/mail"
	"hotelbooking/services/notification"
	"hotelbooking/storage"
	"hotelbooking/storage/memory"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

type stores struct {
	hotels   storage.HotelStore
	bookings storage.BookingStore
	payments storage.PaymentStore
	users    storage.UserStore
	ratings  storage.RatingStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStores, err := openStores(ctx, cfg, appLog)
	if err != nil {
		appLog.Error("Failed to open storage: %v", err)
		os.Exit(1)
	}
	defer closeStores()

	m := melody.New()
	defer m.Close()

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher := queue.NewAMQPPublisher(cfg.RabbitMQURL, appLog.WithField("component", "publisher"))
		defer publisher.Close()
		events = publisher

		var mailer mail.Mailer = mail.Nop{}
		if cfg.SMTPHost != "" {
			mailer = mail.NewSMTPMailer(mail.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUser,
				Password: cfg.SMTPPassword,
				From:     cfg.SMTPFrom,
			})
		}
		consumer := queue.NewConsumer(cfg.RabbitMQURL, mailer, appLog.WithField("component", "booking-consumer"))
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				appLog.Error("booking consumer stopped: %v", err)
			}
		}()
	}

	var photos services.ObjectStorage = services.NewMemoryStorage()
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		appLog.Error("Failed to init Cloudinary: %v", err)
		os.Exit(1)
	}
	if cld != nil {
		photos = services.NewCloudinaryStorage(cld)
	}

	gateway := services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL, cfg.GatewayTimeout)
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Hotels:   st.hotels,
		Bookings: st.bookings,
		Payments: st.payments,
		Gateway:  gateway,
		Notifier: notification.NewMelodyService(m),
		Events:   events,
		Logger:   appLog.WithField("component", "booking"),
		Timeout:  cfg.OpTimeout,
	})
	authService := services.NewAuthService(st.users, services.NewTokenIssuer(cfg.JWTSecret, 0), appLog)

	c := cron.New()
	if err := jobs.InitCronJobs(c, cfg.OrphanSweepSpec, bookingService, appLog.WithField("component", "cron")); err != nil {
		appLog.Error("Failed to initialize cron jobs: %v", err)
		os.Exit(1)
	}
	defer func() { <-c.Stop().Done() }()

	router := config.NewRouter(cfg, appLog)
	routes.SetupRoutes(router, routes.Deps{
		Auth:         authService,
		Bookings:     bookingService,
		Hotels:       services.NewHotelService(st.hotels, photos, appLog),
		Ratings:      services.NewRatingService(st.ratings, st.hotels, appLog),
		Melody:       m,
		Logger:       appLog,
		SecureCookie: cfg.SecureCookie,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLog.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("Failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server shutdown: %v", err)
	}
}

// openStores chọn backend lưu trữ theo STORAGE_DRIVER
func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		db := memory.New(log)
		log.Warn("Using in-memory storage; data is lost on restart")
		return &stores{
			hotels:   db.Hotels(),
			bookings: db.Bookings(),
			payments: db.Payments(),
			users:    db.Users(),
			ratings:  db.Ratings(),
		}, func() {}, nil
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}}

	var hotels storage.HotelStore = storage.NewGormHotelStore(db, log)
	rdb, err := config.ConnectRedis(ctx, cfg, log)
	if err != nil {
		log.Warn("Redis unavailable, hotel cache disabled: %v", err)
	}
	if rdb != nil {
		hotels = storage.NewCachedHotelStore(hotels, rdb, cfg.CacheTTL, log)
		closers = append(closers, func() { _ = rdb.Close() })
	}

	return &stores{
			hotels:   hotels,
			bookings: storage.NewGormBookingStore(db),
			payments: storage.NewGormPaymentStore(db),
			users:    storage.NewGormUserStore(db),
			ratings:  storage.NewGormRatingStore(db),
		}, func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}, nil
}
