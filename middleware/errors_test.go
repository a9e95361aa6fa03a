package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"notekeeper/model"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		handler      gin.HandlerFunc
		expectedCode int
		expectedBody string
	}{
		{
			name: "malformed id",
			handler: func(c *gin.Context) {
				c.Error(fmt.Errorf("lookup: %w", model.ErrMalformedID))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Malformatted id",
		},
		{
			name: "validation error",
			handler: func(c *gin.Context) {
				c.Error(&model.ValidationError{Field: "content", Reason: model.ReasonMissing, Message: "content missing"})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "content missing",
		},
		{
			name: "unexpected error",
			handler: func(c *gin.Context) {
				c.Error(errors.New("connection reset"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "internal server error",
		},
		{
			name: "handler already responded",
			handler: func(c *gin.Context) {
				c.Error(errors.New("ignored"))
				c.JSON(http.StatusOK, gin.H{"error": ""})
			},
			expectedCode: http.StatusOK,
			expectedBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			if w.Code != tt.expectedCode {
				t.Fatalf("Expected status %d, got %d", tt.expectedCode, w.Code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if body.Error != tt.expectedBody {
				t.Errorf("Expected error %q, got %q", tt.expectedBody, body.Error)
			}
		})
	}
}

func TestErrorHandlerCustomStages(t *testing.T) {
	var seen []string
	first := func(c *gin.Context, err error) bool {
		seen = append(seen, "first")
		return false
	}
	second := func(c *gin.Context, err error) bool {
		seen = append(seen, "second")
		c.AbortWithStatusJSON(http.StatusTeapot, gin.H{"error": err.Error()})
		return true
	}
	never := func(c *gin.Context, err error) bool {
		seen = append(seen, "never")
		return true
	}

	router := gin.New()
	router.Use(ErrorHandler(first, second, never))
	router.GET("/test", func(c *gin.Context) { c.Error(errors.New("brew")) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, w.Code)
	}
	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Errorf("Unexpected stage order: %v", seen)
	}
}
