package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-assistant-backend/services"
)

type ProviderController struct {
	providerService services.ProviderLocator
}

func NewProviderController(providerService services.ProviderLocator) *ProviderController {
	return &ProviderController{
		providerService: providerService,
	}
}

// FindProviders looks up healthcare facilities near a free-text location
func (pc *ProviderController) FindProviders(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing location parameter"})
		return
	}

	providers, err := pc.providerService.FindNearbyProviders(c.Request.Context(), location)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Unable to look up providers for that location",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"count":     len(providers),
	})
}
