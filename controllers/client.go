// controllers/client.go
package controllers

import (
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// identityResolver wires the resolver against the live DB and Redis. The
// cache is nil when Redis is not configured; the resolver degrades to the
// pick-or-create paths.
func identityResolver() *services.IdentityResolver {
	var cache services.IdentityCache
	if config.RDB != nil {
		cache = services.NewRedisIdentityCache(config.RDB)
	}
	return services.NewIdentityResolver(config.DB, cache)
}

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
}

// ResolveClientInput carries one of the three identity paths plus the
// remember-me flag.
type ResolveClientInput struct {
	ClientID   *uuid.UUID         `json:"clientId"`
	New        *CreateClientInput `json:"new"`
	SessionKey string             `json:"sessionKey"`
	RememberMe bool               `json:"rememberMe"`
}

type clientView struct {
	models.Client
	Label string `json:"label"`
}

// GetClients retrieves all clients for the salon with their display labels
func GetClients(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	views := make([]clientView, 0, len(clients))
	for i := range clients {
		views = append(views, clientView{
			Client: clients[i],
			Label:  services.DisplayLabel(&clients[i]),
		})
	}

	c.JSON(http.StatusOK, views)
}

// CreateClient creates a new client for the salon
func CreateClient(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := identityResolver().Resolve(c.Request.Context(), services.ResolveInput{
		SalonID: salonUUID,
		New: &services.NewClientInput{
			Name:    input.Name,
			Email:   input.Email,
			Contact: input.Contact,
			Phone:   input.Phone,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ResolveClient resolves the client a booking is for, via cached identity,
// an explicit existing client, or a new client record
func ResolveClient(c *gin.Context) {
	salonUUID, ok := salonScope(c)
	if !ok {
		return
	}

	var input ResolveClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	resolveInput := services.ResolveInput{
		SalonID:    salonUUID,
		ClientID:   input.ClientID,
		SessionKey: input.SessionKey,
		RememberMe: input.RememberMe,
	}
	if input.New != nil {
		resolveInput.New = &services.NewClientInput{
			Name:    input.New.Name,
			Email:   input.New.Email,
			Contact: input.New.Contact,
			Phone:   input.New.Phone,
		}
	}

	client, err := identityResolver().Resolve(c.Request.Context(), resolveInput)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, clientView{
		Client: *client,
		Label:  services.DisplayLabel(client),
	})
}

// ForgetRememberedClient invalidates the remembered identity for a session
func ForgetRememberedClient(c *gin.Context) {
	if _, ok := salonScope(c); !ok {
		return
	}

	sessionKey := c.Param("sessionKey")
	if sessionKey == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Session key required")
		return
	}

	if err := identityResolver().Forget(c.Request.Context(), sessionKey); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to forget remembered client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Remembered client forgotten"})
}
