package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"lifelog/src/interface/handler"
	"lifelog/src/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name             string
		pinger           handler.Pinger
		expectedStatus   int
		expectedHealth   string
		expectedDatabase string
	}{
		{
			name:             "メモリバックエンド",
			pinger:           nil,
			expectedStatus:   http.StatusOK,
			expectedHealth:   "OK",
			expectedDatabase: "memory",
		},
		{
			name:             "データベースに接続できる",
			pinger:           FakePinger{},
			expectedStatus:   http.StatusOK,
			expectedHealth:   "OK",
			expectedDatabase: "postgres",
		},
		{
			name:             "データベースに接続できない",
			pinger:           FakePinger{err: errors.New("dial tcp: connection refused")},
			expectedStatus:   http.StatusServiceUnavailable,
			expectedHealth:   "DEGRADED",
			expectedDatabase: "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			st.Commit(st.Begin(), store.Snapshot{})
			h := handler.NewHealthHandler(tt.pinger, st, quietLogger())
			r := gin.New()
			r.GET("/health", h.Health)

			w := performRequest(r, http.MethodGet, "/health", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedHealth, body["status"])
			assert.Equal(t, tt.expectedDatabase, body["database"])
			assert.EqualValues(t, st.Current().Generation, body["generation"])
		})
	}

	t.Run("未読み込みの場合は世代を含めない", func(t *testing.T) {
		h := handler.NewHealthHandler(nil, store.New(), quietLogger())
		r := gin.New()
		r.GET("/health", h.Health)

		w := performRequest(r, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "generation")
	})
}
