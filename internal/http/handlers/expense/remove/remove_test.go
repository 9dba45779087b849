package remove

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/models"
	"github.com/ansokolv/expense-cards/internal/storage/repository"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	args := m.Called(ctx, id, ownerUID)
	if res := args.Get(0); res != nil {
		return res.(*models.ExpenseCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(id, ownerUID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/expenses/%s", id), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.User, models.PublicUser{UID: ownerUID, Username: "testuser", Email: "test@example.com"})
	return req.WithContext(ctx)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const cardID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление карточки",
			id:   cardID,
			setupMock: func(m *MockService) {
				card := &models.ExpenseCard{
					ID:       cardID,
					Title:    "Cinema",
					Category: "Entertainment",
					Amount:   15,
					Date:     time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
					OwnerUID: "owner-a",
				}
				m.On("Remove", mock.Anything, cardID, "owner-a").Return(card, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Cinema"`,
		},
		{
			name:           "некорректный id в URL",
			id:             "42",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"errorCode":"VALIDATION_ERROR"`,
		},
		{
			name: "карточка не существует",
			id:   cardID,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, cardID, "owner-a").
					Return(nil, repository.ErrExpenseNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"errorCode":"NOT_FOUND"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, newRequest(tt.id, "owner-a"))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

// Повторное удаление того же ID даёт 404 оба раза, а не 500.
func TestRemoveHandler_Idempotent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const cardID = "0c1d2e3f-4a5b-4c6d-8e7f-0a1b2c3d4e5f"

	mockService := new(MockService)
	mockService.On("Remove", mock.Anything, cardID, "owner-a").
		Return(nil, repository.ErrExpenseNotFound).Twice()

	handler := New(logger, mockService)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(cardID, "owner-a"))

		require.Equal(t, http.StatusNotFound, w.Code, "attempt %d", i+1)
		assert.Contains(t, w.Body.String(), `"errorCode":"NOT_FOUND"`)
	}
	mockService.AssertExpectations(t)
}
