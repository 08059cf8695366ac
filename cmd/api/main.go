package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dancehub/internal/database"
	"dancehub/internal/events"
	"dancehub/internal/middleware"
	"dancehub/internal/modules/account"
	"dancehub/internal/modules/auth"
	"dancehub/internal/modules/earnings"
	"dancehub/internal/modules/membership"
	"dancehub/internal/modules/profile"
	jwtsvc "dancehub/internal/pkg/jwt"
	"dancehub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := database.ConnectRedis(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		log.Fatal("redis:", err)
	}

	userRepo := repository.NewUserRepository(db)
	identityRepo := repository.NewIdentityRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	batch := repository.NewBatchWriter(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	hub := events.NewHub()

	authService := auth.NewService(userRepo, identityRepo, j)
	authHandler := auth.NewHandler(authService)

	membershipService := membership.NewService(userRepo, courseRepo, membershipRepo, batch, hub)
	membershipHandler := membership.NewHandler(membershipService)

	earningsService := earnings.NewService(courseRepo, bookingRepo, ticketRepo)
	earningsCache := earnings.NewSummaryCache(rdb, earningsService)
	earningsHandler := earnings.NewHandler(earningsService, earningsCache)

	accountService := account.NewService(authService, courseRepo, instructorRepo, batch, hub, log.Printf)
	accountHandler := account.NewHandler(accountService)

	profileService := profile.NewService(userRepo, instructorRepo, schoolRepo, batch)
	profileHandler := profile.NewHandler(profileService)

	wsHandler := events.NewWSHandler(hub, j)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		wsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			membershipHandler.RegisterRoutes(protected)
			earningsHandler.RegisterRoutes(protected)
			accountHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
