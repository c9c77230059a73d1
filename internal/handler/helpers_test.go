package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"tickr/internal/handler"
	"tickr/internal/middleware"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
)

const testUserID = "user_test"

var testCaller = service.Caller{UserID: testUserID}

// newRouter returns an engine whose requests are authenticated as testUserID.
func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	if err := handler.RegisterValidators(); err != nil {
		panic(err)
	}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, testUserID)
		c.Next()
	})
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func errorOf(resp *httptest.ResponseRecorder) string {
	var body map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	return body["error"]
}
