package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(t *testing.T, handlerFunc gin.HandlerFunc, method string, target string, body any, params gin.Params, payload *jwt.Payload) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		requestBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(requestBytes)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if payload != nil {
		c.Set("payload", &jwt.Claims{Payload: *payload})
	}

	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) response.ResponseBody {
	return doRequest(t, handlerFunc, http.MethodPost, "/test", request, nil, nil)
}

// DoAuthedRequest 以给定身份调用处理函数，模拟 Auth 中间件注入的载荷
func DoAuthedRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any, payload jwt.Payload) response.ResponseBody {
	return doRequest(t, handlerFunc, http.MethodPost, "/test", request, nil, &payload)
}

// DoAuthedGet 以给定身份发起 GET 请求，query 形如 "page=1&page_size=5"
func DoAuthedGet(t *testing.T, handlerFunc gin.HandlerFunc, query string, payload jwt.Payload) response.ResponseBody {
	target := "/test"
	if query != "" {
		target += "?" + query
	}
	return doRequest(t, handlerFunc, http.MethodGet, target, nil, nil, &payload)
}

// DoAuthedParams 以给定身份携带路径参数调用处理函数
func DoAuthedParams(t *testing.T, handlerFunc gin.HandlerFunc, method string, request any, params gin.Params, payload jwt.Payload) response.ResponseBody {
	return doRequest(t, handlerFunc, method, "/test", request, params, &payload)
}
