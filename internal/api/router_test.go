package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perpsignal/signal-engine/internal/store"
	"github.com/perpsignal/signal-engine/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleHealthz(t *testing.T) {
	server := NewServer(store.NewMemorySink())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReadyz_ReadyWhenSinkReachable(t *testing.T) {
	server := NewServer(store.NewMemorySink())
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingSink struct{ err error }

func (f failingSink) Store(context.Context, *model.SignalOutput) error { return nil }
func (f failingSink) Latest(context.Context, string) (*model.SignalOutput, error) {
	return nil, f.err
}

func TestHandleReadyz_UnavailableWhenSinkErrors(t *testing.T) {
	server := NewServer(failingSink{err: assert.AnError})
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleLatestSignal_NotFoundForUnknownSymbol(t *testing.T) {
	server := NewServer(store.NewMemorySink())
	req := httptest.NewRequest(http.MethodGet, "/signals/BTCUSDT", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLatestSignal_ReturnsStoredSignal(t *testing.T) {
	sink := store.NewMemorySink()
	require.NoError(t, sink.Store(context.Background(), &model.SignalOutput{
		Symbol: "BTCUSDT", Timestamp: time.Now(), Direction: model.DirectionLong,
	}))
	server := NewServer(sink)
	req := httptest.NewRequest(http.MethodGet, "/signals/BTCUSDT", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"direction\":\"long\"")
}
