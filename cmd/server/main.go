package main

import (
	"log"
	"net/http"
	"os"

	"stayhub/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stayhub/internal/auth"
	"stayhub/internal/cache"
	"stayhub/internal/config"
	"stayhub/internal/db"
	"stayhub/internal/handler"
	"stayhub/internal/mail"
	"stayhub/internal/model"
	"stayhub/internal/repository"
	"stayhub/internal/repository/memory"
	"stayhub/internal/router"
	"stayhub/internal/service"
)

// repositories bundles one concrete implementation of every store.
type repositories struct {
	users        repository.UserRepository
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
	reviews      repository.ReviewRepository
	messages     repository.ContactMessageRepository
}

// @title StayHub API
// @version 1.0
// @description Room booking API with availability checking, reviews, contact messages and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	repos := buildRepositories(cfg)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	mailer := mail.NewSMTPMailer(cfg)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(repos.users, jwtService, tokenStore, cfg.AdminEmail)
	roomService := service.NewRoomService(repos.rooms, cacheClient)
	reservationService := service.NewReservationService(repos.reservations, repos.users, mailer)
	reviewService := service.NewReviewService(repos.reviews, repos.rooms)
	contactService := service.NewContactService(repos.messages, mailer)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	contactHandler := handler.NewContactHandler(contactService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		roomHandler,
		reservationHandler,
		reviewHandler,
		contactHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// buildRepositories connects to MySQL when a DSN is configured and falls
// back to the in-memory store otherwise, so the server always comes up.
// Services only ever see the repository interfaces.
func buildRepositories(cfg *config.Config) repositories {
	if cfg.MySQLDSN == "" {
		log.Println("MYSQL_DSN not set, using in-memory storage")
		return memoryRepositories()
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Printf("database unavailable (%v), falling back to in-memory storage", err)
		return memoryRepositories()
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Review{},
			&model.Reservation{},
			&model.ContactMessage{},
			&model.Room{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Reservation{},
		&model.Review{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	return repositories{
		users:        repository.NewUserRepository(gormDB),
		rooms:        repository.NewRoomRepository(gormDB),
		reservations: repository.NewReservationRepository(gormDB),
		reviews:      repository.NewReviewRepository(gormDB),
		messages:     repository.NewContactMessageRepository(gormDB),
	}
}

func memoryRepositories() repositories {
	store := memory.NewStore()
	return repositories{
		users:        memory.NewUserRepository(store),
		rooms:        memory.NewRoomRepository(store),
		reservations: memory.NewReservationRepository(store),
		reviews:      memory.NewReviewRepository(store),
		messages:     memory.NewContactMessageRepository(store),
	}
}
