package controllers

import (
	"net/http"
	"testing"

	"lawnops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerRouter(companyID, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("companyId", companyID.String())
		c.Set("userId", userID.String())
	})
	r.POST("/api/customers", CreateCustomer)
	return r
}

func TestCreateCustomerPhoneScoping(t *testing.T) {
	db := setupTestDB(t)

	companyA := uuid.New()
	companyB := uuid.New()

	rA := customerRouter(companyA, uuid.New())
	rB := customerRouter(companyB, uuid.New())

	body := `{"name":"Pat Green","phone":"5550001111"}`

	w := postJSON(rA, "/api/customers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Another company can register a customer with the same phone
	w = postJSON(rB, "/api/customers", `{"name":"Sam Field","phone":"5550001111"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Within a company the phone stays unique
	w = postJSON(rA, "/api/customers", `{"name":"Pat Again","phone":"5550001111"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	var count int64
	db.Model(&models.Customer{}).Where("phone = ?", "5550001111").Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestCreateCustomerInvalidPhone(t *testing.T) {
	setupTestDB(t)
	r := customerRouter(uuid.New(), uuid.New())

	w := postJSON(r, "/api/customers", `{"name":"Pat Green","phone":"12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid phone number")
}
