// Package services содержит бизнес-логику для управления карточками
// расходов, включая кеширование одиночных чтений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ansokolv/expense-cards/internal/lib/filter"
	"github.com/ansokolv/expense-cards/internal/models"
)

// ExpenseRepository определяет методы для работы с карточками расходов в хранилище.
// Все операции принимают владельца и выполняются только в его пределах.
type ExpenseRepository interface {
	// CreateCard добавляет новую карточку и возвращает её ID.
	CreateCard(ctx context.Context, card models.ExpenseCard) (string, error)
	// GetCard возвращает карточку по ID в пределах владельца.
	GetCard(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error)
	// UpdateCard частично обновляет карточку и возвращает новое состояние.
	UpdateCard(ctx context.Context, id, ownerUID string, patch models.ExpenseCardPatch) (*models.ExpenseCard, error)
	// RemoveCard удаляет карточку и возвращает её последнее состояние.
	RemoveCard(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error)
	// ListCards возвращает карточки владельца по фильтру.
	ListCards(ctx context.Context, f models.ExpenseFilter) ([]*models.ExpenseCard, error)
	// TopCategoryBySpend возвращает категорию с максимальной суммой расходов.
	TopCategoryBySpend(ctx context.Context, ownerUID string) (*models.CategorySum, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ExpenseService реализует бизнес-логику работы с карточками расходов.
type ExpenseService struct {
	repo  ExpenseRepository
	cache Cache
	log   *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, cache Cache, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cardCacheKey(ownerUID, id string) string {
	return fmt.Sprintf("expensecard:%s:%s", ownerUID, id)
}

// Create создает новую карточку расхода для владельца и возвращает её ID.
func (s *ExpenseService) Create(ctx context.Context, ownerUID string, req models.DummyExpenseCard) (string, error) {
	date, err := time.Parse(filter.DateLayout, req.Date)
	if err != nil {
		return "", fmt.Errorf("invalid date: %w", err)
	}

	card := models.ExpenseCard{
		Title:    req.Title,
		Category: req.Category,
		Amount:   *req.Amount,
		Date:     date,
		OwnerUID: ownerUID,
	}

	id, err := s.repo.CreateCard(ctx, card)
	if err != nil {
		return "", err
	}

	s.log.Info("created new expense card", slog.String("id", id))
	return id, nil
}

// Read возвращает карточку владельца по ID, используя кеш или репозиторий.
func (s *ExpenseService) Read(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	var result *models.ExpenseCard
	cacheKey := cardCacheKey(ownerUID, id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetCard(ctx, id, ownerUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache expense card", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update частично обновляет карточку: меняются только переданные поля,
// нулевая сумма — валидное обновление.
//
// Кеш инвалидируется после записи в хранилище: инвалидация до записи
// оставляла бы окно, в котором конкурентное чтение успевает вернуть
// старую версию в кеш.
func (s *ExpenseService) Update(ctx context.Context, id, ownerUID string, req models.UpdateExpenseCard) (*models.ExpenseCard, error) {
	patch := models.ExpenseCardPatch{
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
	}
	if req.Date != nil {
		date, err := time.Parse(filter.DateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		patch.Date = &date
	}

	card, err := s.repo.UpdateCard(ctx, id, ownerUID, patch)
	if err != nil {
		return nil, err
	}

	cacheKey := cardCacheKey(ownerUID, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return card, nil
}

// Remove удаляет карточку владельца и инвалидирует кеш после удаления.
func (s *ExpenseService) Remove(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	card, err := s.repo.RemoveCard(ctx, id, ownerUID)
	if err != nil {
		return nil, err
	}

	cacheKey := cardCacheKey(ownerUID, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return card, nil
}

// List возвращает карточки владельца по типизированному фильтру.
func (s *ExpenseService) List(ctx context.Context, f models.ExpenseFilter) ([]*models.ExpenseCard, error) {
	return s.repo.ListCards(ctx, f)
}

// TopCategory возвращает категорию с максимальной суммой расходов
// владельца либо nil, если карточек нет.
func (s *ExpenseService) TopCategory(ctx context.Context, ownerUID string) (*models.CategorySum, error) {
	return s.repo.TopCategoryBySpend(ctx, ownerUID)
}
