package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
	"healthcare-assistant-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

type WebSocketController struct {
	chatbotService *services.ChatbotService
	historyService *services.HistoryService // nil when persistence is disabled
}

func NewWebSocketController(chatbotService *services.ChatbotService, historyService *services.HistoryService) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
		historyService: historyService,
	}
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	conversationID := c.Query("conversation_id")
	if conversationID == "" {
		conversationID = utils.NewConversationID()
	}

	// Greet the client before it says anything
	opening := models.Message{
		ID:             utils.NewMessageID(),
		ConversationID: conversationID,
		Content:        services.InitialGreeting,
		Role:           models.RoleAssistant,
		Timestamp:      time.Now(),
	}
	if err := conn.WriteJSON(models.ChatResponse{Message: opening, Intent: models.IntentGreeting}); err != nil {
		log.Println("Write error:", err)
		return
	}

	for {
		var msg map[string]string
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Println("Read error:", err)
			break
		}

		req := models.ChatRequest{
			Message:        msg["message"],
			ConversationID: conversationID,
			APIKey:         msg["api_key"],
		}

		wc.saveMessage(c, models.Message{
			ID:             utils.NewMessageID(),
			ConversationID: conversationID,
			Content:        req.Message,
			Role:           models.RoleUser,
			Timestamp:      time.Now(),
		})

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			conn.WriteJSON(map[string]interface{}{
				"error": "Failed to process message",
			})
			continue
		}

		wc.saveMessage(c, response.Message)

		conn.WriteJSON(response)
	}
}

func (wc *WebSocketController) saveMessage(c *gin.Context, message models.Message) {
	if wc.historyService == nil {
		return
	}
	if err := wc.historyService.AppendMessage(c.Request.Context(), message); err != nil {
		log.Printf("Failed to persist message %s: %v", message.ID, err)
	}
}
