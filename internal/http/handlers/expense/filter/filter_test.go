package filter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	"github.com/ansokolv/expense-cards/internal/models"
)

// MockService реализует интерфейс filter.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, f models.ExpenseFilter) ([]*models.ExpenseCard, error) {
	args := m.Called(ctx, f)
	if res := args.Get(0); res != nil {
		return res.([]*models.ExpenseCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestFilterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "выборка без параметров",
			query: "",
			setupMock: func(m *MockService) {
				cards := []*models.ExpenseCard{
					{ID: "id-1", Title: "Groceries", Category: "Food", Amount: 30, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), OwnerUID: "owner-a"},
					{ID: "id-2", Title: "June rent", Category: "Rent", Amount: 40, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), OwnerUID: "owner-a"},
				}
				m.On("List", mock.Anything, mock.MatchedBy(func(f models.ExpenseFilter) bool {
					return f.OwnerUID == "owner-a" && f.SortField == "created_at" && !f.SortDesc
				})).Return(cards, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":2`,
		},
		{
			name:  "фильтр по категории и границе суммы",
			query: "?category=Food&maxAmount=35&sortBasis=amount&sortOrder=desc",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.MatchedBy(func(f models.ExpenseFilter) bool {
					return f.Category == "Food" &&
						f.MaxAmount != nil && *f.MaxAmount == 35 &&
						f.SortField == "amount" && f.SortDesc
				})).Return([]*models.ExpenseCard{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name:           "непарсящаяся граница суммы",
			query:          "?maxAmount=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"errorCode":"INVALID_RANGE"`,
		},
		{
			name:           "непарсящаяся граница даты",
			query:          "?minDate=01-06-2024",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"errorCode":"INVALID_RANGE"`,
		},
		{
			name:  "ошибка сервиса",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"errorCode":"INTERNAL_ERROR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/expenses/filter-cards"+tt.query, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.User,
				models.PublicUser{UID: "owner-a", Username: "testuser", Email: "test@example.com"})
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
