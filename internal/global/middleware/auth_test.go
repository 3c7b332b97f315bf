package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(minRoleID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(minRoleID), func(c *gin.Context) {
		payload, _ := jwt.GetUserPayload(c)
		response.Success(c, gin.H{"user_id": payload.UserID})
	})
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, authHeader string) (int, response.ResponseBody) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)

	var body response.ResponseBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w.Code, body
}

func TestAuthMissingToken(t *testing.T) {
	r := setupAuthRouter(0)

	status, body := doAuthRequest(t, r, "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, response.ErrTokenInvalid.Code, body.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := setupAuthRouter(0)

	status, body := doAuthRequest(t, r, "Token abc")
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, response.ErrTokenInvalid.Code, body.Code)
}

func TestAuthValidToken(t *testing.T) {
	r := setupAuthRouter(0)

	token := jwt.CreateToken(jwt.Payload{UserID: 7})
	status, body := doAuthRequest(t, r, "Bearer "+token)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int32(200), body.Code)
}

func TestAuthInsufficientRole(t *testing.T) {
	r := setupAuthRouter(1)

	token := jwt.CreateToken(jwt.Payload{UserID: 7, RoleID: 0})
	status, body := doAuthRequest(t, r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, response.ErrUnauthorized.Code, body.Code)

	adminToken := jwt.CreateToken(jwt.Payload{UserID: 7, RoleID: 1})
	status, _ = doAuthRequest(t, r, "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, status)
}
