package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopregistry/coopregistry-api/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, societyID *uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uint(1),
		"email":   "someone@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	if societyID != nil {
		claims["society_id"] = *societyID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/protected")
	group.Use(Auth(testSecret), RequireDeveloper())
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	return router
}

func TestAuth_MissingToken(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": uint(1),
		"role":    models.RoleDeveloper,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	router := protectedRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireDeveloper_WrongRole(t *testing.T) {
	societyID := uint(3)
	token := signToken(t, models.RoleSocietyAdmin, &societyID)

	router := protectedRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Valid token, wrong role
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireDeveloper_Allows(t *testing.T) {
	token := signToken(t, models.RoleDeveloper, nil)

	router := protectedRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSocietyID(t *testing.T) {
	societyID := uint(3)
	token := signToken(t, models.RoleSocietyAdmin, &societyID)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	var got *uint
	router.GET("/s", Auth(testSecret), func(c *gin.Context) {
		got = GetSocietyID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/s", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.NotNil(t, got)
	assert.Equal(t, societyID, *got)
}
