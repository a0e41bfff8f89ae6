package main

import (
	"context"
	"log"
	"time"

	"user-portal-backend/admin"
	"user-portal-backend/authentication"
	"user-portal-backend/hello"
	"user-portal-backend/users"
	"user-portal-backend/utils"
	"user-portal-backend/version"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := LoadConfig()
	jwtSecret := []byte(cfg.JWTSecret)

	// Initialize MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.DatabaseURL)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the database
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}

	log.Println("Connected to MongoDB!")

	authHandler := authentication.NewHandler(mongoClient, cfg, jwtSecret)
	usersHandler := users.NewHandler(mongoClient, cfg)
	adminHandler := admin.NewHandler(mongoClient, cfg)

	// Initialize Gin router
	r := gin.Default()

	api := r.Group("/api")

	// Public routes
	api.GET("/hello", hello.HandleHello)
	api.POST("/hello", hello.HandleEcho)
	api.GET("/version", func(c *gin.Context) {
		info := version.GetInfo()
		info.ServerEnv = cfg.AppEnv
		info.DatabaseName = cfg.DatabaseName
		utils.RespondOK(c, info)
	})
	api.POST("/auth/register", authHandler.HandleRegister)
	api.POST("/auth/login", authHandler.HandleLogin)

	// Authenticated routes
	authed := api.Group("", authHandler.AuthMiddleware())
	authed.POST("/auth/logout", authHandler.HandleLogout)
	authed.GET("/protected", usersHandler.HandleProtected)
	authed.GET("/users", usersHandler.HandleGetUsers)
	authed.POST("/users", usersHandler.HandleCreateUser)

	// Admin routes: authentication always resolves before the role check
	adminRoutes := api.Group("/admin", authHandler.AuthMiddleware(), authHandler.RequireAdmin())
	adminRoutes.GET("/users", adminHandler.HandleListUsers)
	adminRoutes.PATCH("/users", adminHandler.HandleUpdateUserRole)
	adminRoutes.DELETE("/users", adminHandler.HandleDeleteUser)

	// Start server
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal(err)
	}
}
