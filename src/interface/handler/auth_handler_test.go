package handler_test

import (
	"net/http"
	"testing"
	"time"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/interface/handler"
	"lifelog/src/security"
	"lifelog/src/service"
	"lifelog/src/store"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedWindow() calendar.Window {
	today := domain.MustParseDate("2025-07-15")
	return calendar.Window{
		Start: calendar.DefaultServiceStart,
		Today: func() domain.Date { return today },
	}
}

func setupAuthRouter(authService *MockAuthService, state *store.AppState) *gin.Engine {
	h := handler.NewAuthHandler(authService, state, validator.NewCustomValidator(), quietLogger())
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.PATCH("/profile/password", h.ChangePassword)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	expiresAt := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		requestBody       interface{}
		setupMock         func(*MockAuthService)
		expectedStatus    int
		expectedError     string
		expectedRemaining string
		expectedRetry     string
	}{
		{
			name:        "正常にログインできる",
			requestBody: map[string]string{"password": "secret"},
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "secret", mock.Anything).Return(
					&service.LoginResult{Token: "token", ExpiresAt: expiresAt},
					security.AttemptStatus{Remaining: 5},
					nil,
				)
			},
			expectedStatus:    http.StatusOK,
			expectedRemaining: "5",
		},
		{
			name:        "パスワードが違う",
			requestBody: map[string]string{"password": "wrong"},
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "wrong", mock.Anything).Return(
					nil,
					security.AttemptStatus{Failures: 2, Remaining: 3},
					service.ErrInvalidCredentials,
				)
			},
			expectedStatus:    http.StatusUnauthorized,
			expectedError:     handler.CodeUnauthorized,
			expectedRemaining: "3",
		},
		{
			name:        "試行回数の上限に達した",
			requestBody: map[string]string{"password": "wrong"},
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "wrong", mock.Anything).Return(
					nil,
					security.AttemptStatus{Failures: 5, Locked: true, RetryAfter: 90*time.Second + time.Millisecond},
					service.ErrTooManyAttempts,
				)
			},
			expectedStatus:    http.StatusTooManyRequests,
			expectedError:     handler.CodeTooMany,
			expectedRemaining: "0",
			expectedRetry:     "91",
		},
		{
			name:        "パスワード未設定",
			requestBody: map[string]string{"password": "secret"},
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "secret", mock.Anything).Return(
					nil, security.AttemptStatus{Remaining: 5}, service.ErrPasswordNotConfigured,
				)
			},
			expectedStatus:    http.StatusUnauthorized,
			expectedError:     handler.CodeUnauthorized,
			expectedRemaining: "5",
		},
		{
			name:           "パスワードが空",
			requestBody:    map[string]string{"password": ""},
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setupMock(authService)
			r := setupAuthRouter(authService, store.NewAppState(fixedWindow()))

			w := performRequest(r, http.MethodPost, "/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedRemaining, w.Header().Get("X-Attempts-Remaining"))
			assert.Equal(t, tt.expectedRetry, w.Header().Get("Retry-After"))
			resp := decode(t, w)
			assert.Equal(t, tt.expectedError, resp.Error)
			if tt.expectedStatus == http.StatusOK {
				data := resp.Data.(map[string]interface{})
				assert.Equal(t, "token", data["token"])
				assert.Equal(t, "2025-07-16T00:00:00Z", data["expiresAt"])
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("スナップショットを破棄してカーソルを今日に戻す", func(t *testing.T) {
		state := store.NewAppState(fixedWindow())
		state.Store.Commit(state.Store.Begin(), store.Snapshot{})
		state.Cursor.ShiftMonth(-3)
		require.True(t, state.Cursor.Select(domain.MustParseDate("2025-03-03")))
		r := setupAuthRouter(new(MockAuthService), state)

		w := performRequest(r, http.MethodPost, "/auth/logout", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, state.Store.Current())
		assert.True(t, state.Store.Stale())
		cursor := state.Cursor.State()
		assert.Equal(t, "2025-07-15", cursor.Selected.String())
		assert.Equal(t, "2025-07-01", cursor.DisplayedMonth.String())
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:        "正常に変更できる",
			requestBody: map[string]string{"currentPassword": "old", "newPassword": "new-secret"},
			setupMock: func(m *MockAuthService) {
				m.On("ChangePassword", mock.Anything, "old", "new-secret").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "現在のパスワードが違う",
			requestBody: map[string]string{"currentPassword": "bad", "newPassword": "new-secret"},
			setupMock: func(m *MockAuthService) {
				m.On("ChangePassword", mock.Anything, "bad", "new-secret").Return(service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "新しいパスワードが不正",
			requestBody: map[string]string{"currentPassword": "same", "newPassword": "same"},
			setupMock: func(m *MockAuthService) {
				m.On("ChangePassword", mock.Anything, "same", "same").Return(service.ErrInvalidNewPassword)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "新しいパスワードが短すぎる",
			requestBody:    map[string]string{"currentPassword": "old", "newPassword": "abc"},
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setupMock(authService)
			r := setupAuthRouter(authService, store.NewAppState(fixedWindow()))

			w := performRequest(r, http.MethodPatch, "/profile/password", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			authService.AssertExpectations(t)
		})
	}
}
