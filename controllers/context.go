// controllers/context.go
package controllers

import (
	"net/http"

	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// companyIDFromContext pulls the authenticated company scope set by the auth
// middleware. Writes the error response itself when the scope is missing.
func companyIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("companyId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return uuid.Nil, false
	}

	s, ok := raw.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid company ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid company ID format")
		return uuid.Nil, false
	}
	return id, true
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	s, ok := raw.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// idParam parses the :id path parameter as a UUID.
func idParam(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
