package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ansokolv/expense-cards/internal/models"
	services "github.com/ansokolv/expense-cards/internal/services/expense"
	"github.com/ansokolv/expense-cards/internal/storage/repository"
)

// ExpenseRepoMock реализует интерфейс services.ExpenseRepository
type ExpenseRepoMock struct {
	mock.Mock
}

func (m *ExpenseRepoMock) CreateCard(ctx context.Context, card models.ExpenseCard) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *ExpenseRepoMock) GetCard(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	args := m.Called(ctx, id, ownerUID)
	if res := args.Get(0); res != nil {
		return res.(*models.ExpenseCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepoMock) UpdateCard(ctx context.Context, id, ownerUID string, patch models.ExpenseCardPatch) (*models.ExpenseCard, error) {
	args := m.Called(ctx, id, ownerUID, patch)
	if res := args.Get(0); res != nil {
		return res.(*models.ExpenseCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepoMock) RemoveCard(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	args := m.Called(ctx, id, ownerUID)
	if res := args.Get(0); res != nil {
		return res.(*models.ExpenseCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepoMock) ListCards(ctx context.Context, f models.ExpenseFilter) ([]*models.ExpenseCard, error) {
	args := m.Called(ctx, f)
	if res := args.Get(0); res != nil {
		return res.([]*models.ExpenseCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepoMock) TopCategoryBySpend(ctx context.Context, ownerUID string) (*models.CategorySum, error) {
	args := m.Called(ctx, ownerUID)
	if res := args.Get(0); res != nil {
		return res.(*models.CategorySum), args.Error(1)
	}
	return nil, args.Error(1)
}

// CacheMock реализует интерфейс services.Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func amount(v float64) *float64 { return &v }

func TestExpenseService_Create(t *testing.T) {
	t.Run("успешное создание", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		repoMock.On("CreateCard", mock.Anything, mock.MatchedBy(func(card models.ExpenseCard) bool {
			return card.Title == "Groceries" &&
				card.Category == "Food" &&
				card.Amount == 30 &&
				card.OwnerUID == "owner-a" &&
				card.Date.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		})).Return("new-id", nil).Once()

		id, err := service.Create(context.Background(), "owner-a", models.DummyExpenseCard{
			Title:    "Groceries",
			Category: "Food",
			Amount:   amount(30),
			Date:     "2024-06-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "new-id", id)
		repoMock.AssertExpectations(t)
	})

	t.Run("непарсящаяся дата", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		_, err := service.Create(context.Background(), "owner-a", models.DummyExpenseCard{
			Title:    "Groceries",
			Category: "Food",
			Amount:   amount(30),
			Date:     "01.06.2024",
		})
		require.Error(t, err)
		repoMock.AssertNotCalled(t, "CreateCard", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_Read(t *testing.T) {
	card := &models.ExpenseCard{
		ID:       "id-1",
		Title:    "Groceries",
		Category: "Food",
		Amount:   30,
		OwnerUID: "owner-a",
	}

	t.Run("промах кеша — чтение из репозитория и запись в кеш", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		cacheMock.On("Get", "expensecard:owner-a:id-1", mock.Anything).Return(false, nil)
		repoMock.On("GetCard", mock.Anything, "id-1", "owner-a").Return(card, nil)
		cacheMock.On("Set", "expensecard:owner-a:id-1", card, time.Hour).Return(nil)

		got, err := service.Read(context.Background(), "id-1", "owner-a")
		require.NoError(t, err)
		assert.Equal(t, card, got)
		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("попадание в кеш — репозиторий не трогаем", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		cacheMock.On("Get", "expensecard:owner-a:id-1", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.ExpenseCard)
				*ptr = card
			}).Return(true, nil)

		got, err := service.Read(context.Background(), "id-1", "owner-a")
		require.NoError(t, err)
		assert.Equal(t, card, got)
		repoMock.AssertNotCalled(t, "GetCard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка кеша не фатальна", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		cacheMock.On("Get", "expensecard:owner-a:id-1", mock.Anything).
			Return(false, assert.AnError)
		repoMock.On("GetCard", mock.Anything, "id-1", "owner-a").Return(card, nil)
		cacheMock.On("Set", "expensecard:owner-a:id-1", card, time.Hour).Return(nil)

		got, err := service.Read(context.Background(), "id-1", "owner-a")
		require.NoError(t, err)
		assert.Equal(t, card, got)
	})

	t.Run("карточка не найдена", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		cacheMock.On("Get", "expensecard:owner-a:id-1", mock.Anything).Return(false, nil)
		repoMock.On("GetCard", mock.Anything, "id-1", "owner-a").
			Return(nil, repository.ErrExpenseNotFound)

		_, err := service.Read(context.Background(), "id-1", "owner-a")
		require.ErrorIs(t, err, repository.ErrExpenseNotFound)
		cacheMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExpenseService_Update(t *testing.T) {
	t.Run("патч только из переданных полей, кеш инвалидируется", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		updated := &models.ExpenseCard{ID: "id-1", Title: "New title", Amount: 0}

		cacheMock.On("Invalidate", "expensecard:owner-a:id-1").Return(nil)
		repoMock.On("UpdateCard", mock.Anything, "id-1", "owner-a",
			mock.MatchedBy(func(p models.ExpenseCardPatch) bool {
				// Нулевая сумма — валидное обновление, дата не тронута
				return p.Title != nil && *p.Title == "New title" &&
					p.Amount != nil && *p.Amount == 0 &&
					p.Category == nil && p.Date == nil
			})).Return(updated, nil)

		title := "New title"
		got, err := service.Update(context.Background(), "id-1", "owner-a", models.UpdateExpenseCard{
			Title:  &title,
			Amount: amount(0),
		})
		require.NoError(t, err)
		assert.Equal(t, updated, got)
		cacheMock.AssertExpectations(t)
		repoMock.AssertExpectations(t)
	})

	t.Run("непарсящаяся дата", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		badDate := "июнь 2024"
		_, err := service.Update(context.Background(), "id-1", "owner-a", models.UpdateExpenseCard{
			Date: &badDate,
		})
		require.Error(t, err)
		repoMock.AssertNotCalled(t, "UpdateCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("инвалидация кеша строго после записи в хранилище", func(t *testing.T) {
		// Инвалидация до записи оставляет окно, в котором конкурентное
		// чтение возвращает в кеш дообновлённую версию карточки
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		var updated bool
		repoMock.On("UpdateCard", mock.Anything, "id-1", "owner-a", mock.Anything).
			Run(func(_ mock.Arguments) {
				updated = true
			}).
			Return(&models.ExpenseCard{ID: "id-1"}, nil)
		cacheMock.On("Invalidate", "expensecard:owner-a:id-1").
			Run(func(_ mock.Arguments) {
				assert.True(t, updated, "cache must be invalidated only after the repository write")
			}).Return(nil)

		title := "New title"
		_, err := service.Update(context.Background(), "id-1", "owner-a", models.UpdateExpenseCard{Title: &title})
		require.NoError(t, err)
		cacheMock.AssertExpectations(t)
	})

	t.Run("при ошибке записи кеш не трогаем", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		repoMock.On("UpdateCard", mock.Anything, "id-1", "owner-a", mock.Anything).
			Return(nil, repository.ErrExpenseNotFound)

		title := "New title"
		_, err := service.Update(context.Background(), "id-1", "owner-a", models.UpdateExpenseCard{Title: &title})
		require.ErrorIs(t, err, repository.ErrExpenseNotFound)
		cacheMock.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestExpenseService_Remove(t *testing.T) {
	t.Run("удаление инвалидирует кеш после записи", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		removed := &models.ExpenseCard{ID: "id-1", Title: "Groceries"}

		var deleted bool
		repoMock.On("RemoveCard", mock.Anything, "id-1", "owner-a").
			Run(func(_ mock.Arguments) {
				deleted = true
			}).
			Return(removed, nil)
		cacheMock.On("Invalidate", "expensecard:owner-a:id-1").
			Run(func(_ mock.Arguments) {
				assert.True(t, deleted, "cache must be invalidated only after the repository delete")
			}).Return(nil)

		got, err := service.Remove(context.Background(), "id-1", "owner-a")
		require.NoError(t, err)
		assert.Equal(t, removed, got)
		cacheMock.AssertExpectations(t)
		repoMock.AssertExpectations(t)
	})

	t.Run("несуществующая карточка не трогает кеш", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		repoMock.On("RemoveCard", mock.Anything, "id-1", "owner-a").
			Return(nil, repository.ErrExpenseNotFound)

		_, err := service.Remove(context.Background(), "id-1", "owner-a")
		require.ErrorIs(t, err, repository.ErrExpenseNotFound)
		cacheMock.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestExpenseService_TopCategory(t *testing.T) {
	t.Run("категория с максимальной суммой", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		repoMock.On("TopCategoryBySpend", mock.Anything, "owner-a").
			Return(&models.CategorySum{Category: "Food", TotalAmount: 50}, nil)

		got, err := service.TopCategory(context.Background(), "owner-a")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Food", got.Category)
		assert.Equal(t, 50.0, got.TotalAmount)
	})

	t.Run("без карточек — nil без ошибки", func(t *testing.T) {
		repoMock := new(ExpenseRepoMock)
		cacheMock := new(CacheMock)
		service := services.NewExpenseService(repoMock, cacheMock, newLogger())

		repoMock.On("TopCategoryBySpend", mock.Anything, "owner-a").Return(nil, nil)

		got, err := service.TopCategory(context.Background(), "owner-a")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
