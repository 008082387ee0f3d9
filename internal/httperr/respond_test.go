package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shortfall struct{ missing int }

func (s shortfall) Error() string { return CodeInsufficientCredit }
func (s shortfall) Unwrap() error { return ErrBusiness(CodeInsufficientCredit) }
func (s shortfall) Details() any  { return map[string]int{"missing": s.missing} }

func respond(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond(t *testing.T) {
	status, body := respond(t, fmt.Errorf("%w: session 4", ErrBusiness(CodeNotFound)))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, body["error_code"])
	assert.Equal(t, "session_not_found: session 4", body["message"])
	assert.Nil(t, body["retryable"])

	status, body = respond(t, fmt.Errorf("%w: lock timeout", ErrBusiness(CodeBusy)))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, true, body["retryable"])

	status, body = respond(t, shortfall{missing: 2})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]any{"missing": float64(2)}, body["details"])

	status, body = respond(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Unexpected error.", body["message"])
}

func TestCodeHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBusiness(CodeSlotConflict))

	assert.Equal(t, CodeSlotConflict, CodeOf(err))
	assert.True(t, IsBusiness(err, CodeSlotConflict))
	assert.False(t, Retryable(err))
	assert.True(t, errors.Is(err, ErrBusiness(CodeSlotConflict)))
	assert.Equal(t, "", CodeOf(errors.New("boom")))
}
