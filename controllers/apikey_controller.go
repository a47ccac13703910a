package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
)

type APIKeyController struct {
	apiKeyService *services.APIKeyService
}

func NewAPIKeyController(apiKeyService *services.APIKeyService) *APIKeyController {
	return &APIKeyController{
		apiKeyService: apiKeyService,
	}
}

// GenerateKey issues a new API key for the requested role
func (kc *APIKeyController) GenerateKey(c *gin.Context) {
	var req struct {
		Role models.APIKeyRole `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if req.Role != models.RolePatient && req.Role != models.RoleProvider {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Role must be 'patient' or 'provider'",
		})
		return
	}

	key := kc.apiKeyService.GenerateAPIKey(req.Role)

	permissions := []string{}
	for name := range models.DefaultPermissions(req.Role) {
		permissions = append(permissions, name)
	}

	c.JSON(http.StatusCreated, gin.H{
		"api_key":     key,
		"role":        req.Role,
		"permissions": permissions,
	})
}

// ValidateKey checks whether a key is currently valid
func (kc *APIKeyController) ValidateKey(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing key parameter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": kc.apiKeyService.ValidateAPIKey(key),
	})
}

// RevokeKey invalidates a key; the record is kept for audit
func (kc *APIKeyController) RevokeKey(c *gin.Context) {
	key := c.Param("key")

	revoked := kc.apiKeyService.RevokeAPIKey(key)
	if !revoked {
		c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": true})
}
