package switchrole_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/user/switchrole"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// MockService реализует интерфейс switchrole.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SwitchRole(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func TestSwitchRoleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		uid            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное переключение роли",
			uid:  "user-uid",
			setupMock: func(m *MockService) {
				m.On("SwitchRole", mock.Anything, "user-uid").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"role switched successfully"`,
		},
		{
			name: "пользователь не найден",
			uid:  "missing-uid",
			setupMock: func(m *MockService) {
				m.On("SwitchRole", mock.Anything, "missing-uid").
					Return(models.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"user not found"`,
		},
		{
			name: "ошибка сервиса",
			uid:  "user-uid",
			setupMock: func(m *MockService) {
				m.On("SwitchRole", mock.Anything, "user-uid").
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not switch role"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := switchrole.New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/users/"+tt.uid+"/role", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
