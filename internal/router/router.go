package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rakib99/pinnest/backend/internal/handlers"
	"github.com/rakib99/pinnest/backend/internal/middleware"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"github.com/rakib99/pinnest/backend/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Collaborator{},
		&models.Invitation{},
		&models.Like{},
		&models.SavedPin{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	boardRepo := repositories.NewPostgresBoardRepository(pgdb)
	collaboratorRepo := repositories.NewPostgresCollaboratorRepository(pgdb)
	invitationRepo := repositories.NewPostgresInvitationRepository(pgdb)
	pinRepo := repositories.NewMongoPinRepository(mgClient.Database("pinnest"))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	savedPinRepo := repositories.NewPostgresSavedPinRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Initialize Services ---
	notifier := services.NewNotifier(notificationRepo)
	permissionService := services.NewPermissionService(boardRepo, collaboratorRepo)
	pinService := services.NewPinService(pinRepo, permissionService)
	invitationService := services.NewInvitationService(invitationRepo, boardRepo, collaboratorRepo, userRepo, notifier)
	likeService := services.NewLikeService(likeRepo, pinRepo, userRepo, notifier)
	saveService := services.NewSaveService(savedPinRepo, pinRepo, boardRepo, userRepo, notifier)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	log.Println("User profile routes configured.")

	// Board routes
	boardHandler := handlers.NewBoardHandler(boardRepo, collaboratorRepo)
	boardHandler.RegisterBoardRoutes(api)
	log.Println("Board routes configured.")

	// Invitation routes
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	invitationHandler.RegisterInvitationRoutes(api)
	log.Println("Invitation routes configured.")

	// Pin routes
	pinHandler := handlers.NewPinHandler(pinService)
	pinHandler.RegisterPinRoutes(api)
	log.Println("Pin routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(pinRepo, userRepo, likeRepo, savedPinRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Saved pin routes
	savedPinHandler := handlers.NewSavedPinHandler(saveService)
	savedPinHandler.RegisterSavedPinRoutes(api)
	log.Println("Saved pin routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
