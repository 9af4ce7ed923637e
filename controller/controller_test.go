package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"baristasalary/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     &service.ValidationError{Err: service.ErrBaristaBusy, Message: "busy"},
			status:  http.StatusBadRequest,
			message: "busy",
		},
		{
			name:    "duplicate",
			err:     &service.ValidationError{Err: service.ErrDuplicate, Message: "exists"},
			status:  http.StatusConflict,
			message: "exists",
		},
		{
			name:    "not found",
			err:     fmt.Errorf("load cafe: %w", service.ErrNotFound),
			status:  http.StatusNotFound,
			message: "Record not found",
		},
		{
			name:    "storage",
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, raw := range []string{"abc", "0", "-1"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := parseID(c)
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, ok := parseID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(17), id)
}
