// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"irontrack/controllers"
	"irontrack/logger"
	"irontrack/middleware"
	"irontrack/services"
	"irontrack/store"
	"irontrack/websocket"
)

// mustEnv reads a required configuration value; startup fails without it.
func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Missing required environment variable %s", key)
	}
	return value
}

func main() {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	// .env is for local development; deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Warn.Println("main: no .env file found, relying on process environment")
	}
	logger.SetLogLevel(os.Getenv("APP_ENV"))

	// Required configuration, no defaults
	port := mustEnv("PORT")
	mongoURI := mustEnv("MONGODB_CONNECT_STRING")
	emailSender := mustEnv("EMAIL_SENDER")
	allowedOrigin := mustEnv("ALLOWED_ORIGIN")

	applicationURL := os.Getenv("APPLICATION_URL")
	if applicationURL == "" {
		applicationURL = "http://localhost:" + port // local testing
	}
	controllers.SetConfig(applicationURL)

	// Connect to the document store before accepting any request.
	// One client for the process lifetime; failure here is fatal.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := store.Connect(ctx, mongoURI)
	if err != nil {
		logger.Error.Printf("main: could not connect to document store: %v", err)
		log.Fatalf("Could not connect to document store: %v", err)
	}
	userStore := store.NewUserStore(client)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Could not create indexes: %v", err)
	}

	// Initialize the router
	router := gin.Default()

	// Cross-origin requests are allowed from one configured origin only,
	// with credentials so the session cookie travels along.
	router.Use(middleware.CORS(allowedOrigin))

	// Initialize session store
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "to you, from me again"
	}
	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   false, // set to true behind TLS
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("irontrack-session", cookieStore))

	// Health checks
	router.GET("/health", controllers.Health)

	// Public routes
	emailService := services.NewEmailService(emailSender)
	auth := controllers.NewAuthController(userStore, emailService)
	router.POST("/login", auth.Login)
	router.POST("/registration", auth.Register)
	router.POST("/logout", auth.Logout)

	entries := controllers.NewExerciseController(userStore)

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.POST("/exercises", entries.Create)
		protected.GET("/exercises", entries.List)
		protected.GET("/exercises/feed", entries.Feed)
	}

	// Share-link routes, addressable by entry id without a session
	router.GET("/exercises/:id", entries.GetByID)
	router.PUT("/exercises/:id", entries.Update)
	router.DELETE("/exercises/:id", entries.Delete)
	router.DELETE("/exercises", entries.Delete) // missing id is a client error
	router.GET("/exercises/:id/qrcode", entries.ShareQRCode)

	// Start the feed dispatcher
	go websocket.HandleMessages()

	// Start the server
	logger.Info.Printf("main: listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
