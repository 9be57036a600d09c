package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(TraceIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})
	return engine
}

func TestTraceIDReusesIncomingHeader(t *testing.T) {
	engine := traceRouter()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-ID", "upstream-trace-7")
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, "upstream-trace-7", recorder.Header().Get("X-Trace-ID"))
	assert.Equal(t, "upstream-trace-7", recorder.Body.String())
}

func TestTraceIDGeneratedWhenHeaderMissing(t *testing.T) {
	engine := traceRouter()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	traceID := recorder.Header().Get("X-Trace-ID")
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)
	assert.Equal(t, traceID, recorder.Body.String())
}
