package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
	"healthcare-assistant-backend/utils"
)

type ChatController struct {
	chatbotService *services.ChatbotService
	historyService *services.HistoryService // nil when persistence is disabled
}

func NewChatController(chatbotService *services.ChatbotService, historyService *services.HistoryService) *ChatController {
	return &ChatController{
		chatbotService: chatbotService,
		historyService: historyService,
	}
}

// HandleChat processes one chat turn
func (cc *ChatController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if req.ConversationID == "" {
		req.ConversationID = utils.NewConversationID()
	}

	cc.saveMessage(c, models.Message{
		ID:             utils.NewMessageID(),
		ConversationID: req.ConversationID,
		Content:        req.Message,
		Role:           models.RoleUser,
		Timestamp:      time.Now(),
	})

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	cc.saveMessage(c, response.Message)

	c.JSON(http.StatusOK, response)
}

// HandleReset reinitializes a conversation's intake state
func (cc *ChatController) HandleReset(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversation_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if err := cc.chatbotService.ResetConversation(c.Request.Context(), req.ConversationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset conversation",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Conversation reset",
		"conversation_id": req.ConversationID,
	})
}

// GetSupportedIntents returns the list of supported intents
func (cc *ChatController) GetSupportedIntents(c *gin.Context) {
	intents := []map[string]interface{}{
		{
			"intent":      "symptom_description",
			"description": "Describe symptoms you're experiencing",
			"examples": []string{
				"I have a bad headache",
				"I've been feeling nauseous",
			},
		},
		{
			"intent":      "duration_info",
			"description": "How long the symptoms have lasted",
			"examples": []string{
				"Since yesterday",
				"For about two weeks",
			},
		},
		{
			"intent":      "severity_rating",
			"description": "Rate symptom severity on a 0-10 scale",
			"examples": []string{
				"About an 8",
				"It's pretty mild",
			},
		},
		{
			"intent":      "next_steps_request",
			"description": "Ask what to do about your symptoms",
			"examples": []string{
				"What should I do?",
				"Should I see a doctor?",
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
	})
}

func (cc *ChatController) saveMessage(c *gin.Context, message models.Message) {
	if cc.historyService == nil {
		return
	}
	if err := cc.historyService.AppendMessage(c.Request.Context(), message); err != nil {
		log.Printf("Failed to persist message %s: %v", message.ID, err)
	}
}
