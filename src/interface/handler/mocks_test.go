package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/interface/handler"
	"lifelog/src/query"
	"lifelog/src/security"
	"lifelog/src/service"
	"lifelog/src/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// performRequest sends body as JSON (nil sends no body)
func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, _ := json.Marshal(b)
			reader = bytes.NewBuffer(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.Response {
	t.Helper()
	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// detailFields collects the field names of a validation failure
func detailFields(t *testing.T, resp handler.Response) []string {
	t.Helper()
	details, ok := resp.Details.([]interface{})
	require.True(t, ok, "details must be a list")
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.(map[string]interface{})["field"].(string))
	}
	return fields
}

const sampleID = "7b1c2f8e-3d4a-4b5c-9d6e-1f2a3b4c5d6e"

// MockJournalUsecase is a mock implementation of usecase.JournalUsecase
type MockJournalUsecase struct {
	mock.Mock
}

func (m *MockJournalUsecase) CreateJournal(ctx context.Context, req usecase.CreateJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalUsecase) GetJournal(ctx context.Context, id string) (*domain.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalUsecase) UpdateJournal(ctx context.Context, id string, req usecase.UpdateJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalUsecase) SetLocked(ctx context.Context, id string, locked bool) (*domain.Journal, error) {
	args := m.Called(ctx, id, locked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalUsecase) ChangeImages(ctx context.Context, id string, imageIDs []string) (*domain.Journal, error) {
	args := m.Called(ctx, id, imageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalUsecase) SaveJournal(ctx context.Context, id string) (*domain.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalUsecase) DeleteJournal(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJournalUsecase) FindJournals(ctx context.Context, scope domain.Scope, date domain.Date) ([]domain.Journal, error) {
	args := m.Called(ctx, scope, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

// MockTodoUsecase is a mock implementation of usecase.TodoUsecase
type MockTodoUsecase struct {
	mock.Mock
}

func (m *MockTodoUsecase) CreateTodo(ctx context.Context, req usecase.CreateTodoRequest) (*domain.Todo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoUsecase) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoUsecase) UpdateTodo(ctx context.Context, id string, req usecase.UpdateTodoRequest) (*domain.Todo, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoUsecase) ChangeStatus(ctx context.Context, id string, status domain.Status) (*domain.Todo, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoUsecase) CopyTodo(ctx context.Context, id string, date domain.Date) (*domain.Todo, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoUsecase) DeleteTodo(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTodoUsecase) FindTodos(ctx context.Context, scope domain.Scope, date domain.Date) ([]domain.Todo, error) {
	args := m.Called(ctx, scope, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Todo), args.Error(1)
}

// MockCalendarUsecase is a mock implementation of usecase.CalendarUsecase
type MockCalendarUsecase struct {
	mock.Mock
}

func (m *MockCalendarUsecase) Month(ctx context.Context, month domain.Date, padding *bool) (*usecase.MonthView, error) {
	args := m.Called(ctx, month, padding)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MonthView), args.Error(1)
}

func (m *MockCalendarUsecase) DisplayedMonth(ctx context.Context, padding *bool) (*usecase.MonthView, error) {
	args := m.Called(ctx, padding)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MonthView), args.Error(1)
}

func (m *MockCalendarUsecase) Day(ctx context.Context, date domain.Date) (*usecase.DayView, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DayView), args.Error(1)
}

func (m *MockCalendarUsecase) Cursor() calendar.CursorState {
	args := m.Called()
	return args.Get(0).(calendar.CursorState)
}

func (m *MockCalendarUsecase) ShiftMonth(offset int) (calendar.CursorState, error) {
	args := m.Called(offset)
	return args.Get(0).(calendar.CursorState), args.Error(1)
}

func (m *MockCalendarUsecase) Select(date domain.Date) usecase.SelectResult {
	args := m.Called(date)
	return args.Get(0).(usecase.SelectResult)
}

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, password, clientKey string) (*service.LoginResult, security.AttemptStatus, error) {
	args := m.Called(ctx, password, clientKey)
	if args.Get(0) == nil {
		return nil, args.Get(1).(security.AttemptStatus), args.Error(2)
	}
	return args.Get(0).(*service.LoginResult), args.Get(1).(security.AttemptStatus), args.Error(2)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, current, next string) error {
	args := m.Called(ctx, current, next)
	return args.Error(0)
}

// FakePinger answers health checks with err
type FakePinger struct {
	err error
}

func (p FakePinger) PingContext(ctx context.Context) error {
	return p.err
}

// emptyBadges keeps MonthView fixtures short
var emptyBadges = query.BadgeSet{}
