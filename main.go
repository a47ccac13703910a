package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/database"
	"healthcare-assistant-backend/routes"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cfg := config.Get()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database; chat still works without persistence
	var db *mongo.Database
	if err := database.Connect(cfg); err != nil {
		log.Printf("WARNING: running without transcript persistence: %v", err)
	} else {
		db = database.GetMongoDB()
		defer database.Disconnect()
	}

	// Create Gin router
	router := gin.New()

	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		log.Fatalf("Invalid trusted proxy configuration: %v", err)
	}

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(corsMiddleware(cfg.Security.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":        "ok",
			"timestamp":     time.Now(),
			"persistence":   db != nil,
			"session_store": cfg.Session.Store,
		}
		if db != nil {
			if err := database.HealthCheck(); err != nil {
				status["database"] = "unreachable"
			} else {
				status["database"] = "ok"
			}
		}
		c.JSON(200, status)
	})

	// Setup all routes
	routes.SetupRoutes(router, db)

	// Log available endpoints
	logAvailableEndpoints(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// corsMiddleware reflects the request origin when it is allowed
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-API-Key")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine) {
	log.Println("\nAvailable endpoints:")
	routes := router.Routes()
	for _, route := range routes {
		log.Printf("  %s %s", route.Method, route.Path)
	}
	log.Println("")
}
