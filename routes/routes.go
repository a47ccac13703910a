package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/controllers"
	"healthcare-assistant-backend/middleware"
	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
)

// SetupRoutes wires services and controllers onto the router. db may be
// nil, in which case transcript persistence is disabled.
func SetupRoutes(router *gin.Engine, db *mongo.Database) {
	cfg := config.Get()

	// Initialize services
	var contexts services.ContextStore
	if cfg.Session.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		contexts = services.NewRedisContextStore(rdb)
	} else {
		contexts = services.NewMemoryContextStore()
	}

	apiKeyService := services.NewAPIKeyService()
	providerService := services.NewProviderService(cfg.Providers.GeocodeURL, cfg.Providers.Timeout)
	chatbotService := services.NewChatbotService(contexts, providerService, apiKeyService)

	var historyService *services.HistoryService
	if db != nil {
		historyService = services.NewHistoryService(db)
	}

	// Initialize controllers
	chatController := controllers.NewChatController(chatbotService, historyService)
	wsController := controllers.NewWebSocketController(chatbotService, historyService)
	apiKeyController := controllers.NewAPIKeyController(apiKeyService)
	providerController := controllers.NewProviderController(providerService)
	historyController := controllers.NewHistoryController(historyService)

	// Public routes
	public := router.Group("/api/v1")
	{
		public.POST("/chat", chatController.HandleChat)
		public.POST("/chat/reset", chatController.HandleReset)
		public.GET("/chat/intents", chatController.GetSupportedIntents)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)

		// Credential gate
		public.POST("/keys", apiKeyController.GenerateKey)
		public.GET("/keys/validate", apiKeyController.ValidateKey)
		public.DELETE("/keys/:key", apiKeyController.RevokeKey)

		// Provider lookup collaborator, also reachable directly
		public.GET("/providers", providerController.FindProviders)
	}

	// Transcript readback requires a provider-role key
	protected := router.Group("/api/v1")
	protected.Use(middleware.RequirePermission(apiKeyService, models.PermissionHistoryAccess))
	{
		protected.GET("/history/:conversation_id", historyController.GetConversation)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}
