package main

import (
	"database/sql"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"lenslink/internal/config"
	"lenslink/internal/handlers"
	"lenslink/internal/leads/match"
	"lenslink/internal/repositories"
	"lenslink/internal/services"
	"lenslink/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	wsManager *WebSocketManager
	userRepo  *repositories.UserRepository

	userHandler      *handlers.UserHandler
	partnerHandler   *handlers.PartnerHandler
	inquiryHandler   *handlers.InquiryHandler
	portfolioHandler *handlers.PortfolioHandler
	reviewHandler    *handlers.ReviewHandler
	categoryHandler  *handlers.CategoryHandler
	locationHandler  *handlers.LocationHandler
	adminHandler     *handlers.AdminHandler
}

// logPair adapts the stdlib logger pair to the matching engine's logger.
type logPair struct {
	info *log.Logger
	err  *log.Logger
}

func (l logPair) Infof(format string, args ...interface{})  { l.info.Printf(format, args...) }
func (l logPair) Errorf(format string, args ...interface{}) { l.err.Printf(format, args...) }

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, uploader *utils.Uploader, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	partnerRepo := &repositories.PartnerRepository{DB: db}
	inquiryRepo := &repositories.InquiryRepository{DB: db}
	portfolioRepo := &repositories.PortfolioRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	categoryRepo := &repositories.CategoryRepository{DB: db}
	locationRepo := &repositories.LocationRepository{DB: db}
	fcmRepo := &repositories.FCMTokenRepository{DB: db}

	wsManager := NewWebSocketManager()

	tokens, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		return nil, err
	}

	// Services
	notificationService := &services.NotificationService{
		FCM:         fcmClient,
		Tokens:      fcmRepo,
		PartnerRepo: partnerRepo,
		Realtime:    wsManager,
		ErrorLog:    errorLog,
	}
	matcher := match.New(partnerRepo, inquiryRepo, notificationService, logPair{info: infoLog, err: errorLog})

	userService := &services.UserService{UserRepo: userRepo, SigningKey: cfg.JWT.SigningKey, Tokens: tokens}
	partnerService := &services.PartnerService{PartnerRepo: partnerRepo, InquiryRepo: inquiryRepo}
	inquiryService := &services.InquiryService{Inquiries: inquiryRepo, Matcher: matcher, Events: notificationService}
	portfolioService := &services.PortfolioService{PortfolioRepo: portfolioRepo, PartnerRepo: partnerRepo}
	reviewService := &services.ReviewService{ReviewRepo: reviewRepo, PartnerRepo: partnerRepo}
	categoryService := &services.CategoryService{CategoryRepo: categoryRepo, RDB: rdb}
	locationService := &services.LocationService{LocationRepo: locationRepo, RDB: rdb}
	adminService := &services.AdminService{
		UserRepo:      userRepo,
		PartnerRepo:   partnerRepo,
		InquiryRepo:   inquiryRepo,
		PortfolioRepo: portfolioRepo,
	}

	return &application{
		errorLog:  errorLog,
		infoLog:   infoLog,
		cfg:       cfg,
		db:        db,
		wsManager: wsManager,
		userRepo:  userRepo,

		userHandler:      &handlers.UserHandler{Service: userService, Notifications: notificationService},
		partnerHandler:   &handlers.PartnerHandler{Service: partnerService},
		inquiryHandler:   &handlers.InquiryHandler{Service: inquiryService, Partners: partnerService, Uploader: uploader},
		portfolioHandler: &handlers.PortfolioHandler{Service: portfolioService, Uploader: uploader},
		reviewHandler:    &handlers.ReviewHandler{Service: reviewService},
		categoryHandler:  &handlers.CategoryHandler{Service: categoryService},
		locationHandler:  &handlers.LocationHandler{Service: locationService},
		adminHandler:     &handlers.AdminHandler{Service: adminService},
	}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(35)
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
