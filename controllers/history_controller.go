package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"healthcare-assistant-backend/services"
)

type HistoryController struct {
	historyService *services.HistoryService // nil when persistence is disabled
}

func NewHistoryController(historyService *services.HistoryService) *HistoryController {
	return &HistoryController{
		historyService: historyService,
	}
}

// GetConversation returns a conversation's transcript
func (hc *HistoryController) GetConversation(c *gin.Context) {
	if hc.historyService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Transcript persistence is not enabled",
		})
		return
	}

	conversationID := c.Param("conversation_id")

	conversation, err := hc.historyService.GetConversation(c.Request.Context(), conversationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Conversation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve conversation",
		})
		return
	}

	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil {
			limit = l
		}
	}

	messages, err := hc.historyService.GetMessages(c.Request.Context(), conversationID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve chat history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation": conversation,
		"messages":     messages,
		"count":        len(messages),
	})
}
