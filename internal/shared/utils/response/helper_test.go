package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondJSON(c, "error", http.StatusNotFound, "Reservation not found", nil, nil)

	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, 404, body.StatusCode)
	assert.Nil(t, body.Data)
}

func TestValidationErrors(t *testing.T) {
	type req struct {
		Name  string `validate:"required"`
		Seats []int  `validate:"min=1"`
	}
	err := validator.New().Struct(req{})

	out, ok := ValidationErrors(err).(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "required", out["name"])
	assert.Equal(t, "min=1", out["seats"])

	assert.Equal(t, "boom", ValidationErrors(errors.New("boom")))
}
