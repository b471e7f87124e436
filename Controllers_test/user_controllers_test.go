package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/controllers"
	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/auth/register", userCtrl.Register)
	router.POST("/auth/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Dana Admin",
		"email":    "dana@dealstack.io",
		"password": "supersecret1",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// password must never be stored in the clear
	var user models.User
	db.Where("email = ?", "dana@dealstack.io").First(&user)
	assert.NotEqual(t, "supersecret1", user.Password)
	assert.Equal(t, "admin", user.Role)

	w = doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "dana@dealstack.io",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["user_role"])

	claims, err := utils.ParseToken(data["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	doJSON(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Sam Staff",
		"email":    "sam@dealstack.io",
		"password": "supersecret1",
	})

	w := doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "sam@dealstack.io",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "nobody@dealstack.io",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	// short password
	w := doJSON(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Shorty",
		"email":    "shorty@dealstack.io",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// invalid role
	w = doJSON(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Rogue",
		"email":    "rogue@dealstack.io",
		"password": "supersecret1",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
