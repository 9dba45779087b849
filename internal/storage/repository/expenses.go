package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ansokolv/expense-cards/internal/models"
)

const expenseColumns = "id, title, category, amount, date, owner_uid, created_at, updated_at"

// CreateCard вставляет новую карточку расхода и возвращает её ID.
func (s *Storage) CreateCard(ctx context.Context, card models.ExpenseCard) (string, error) {
	const op = "storage.CreateCard"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expense_cards (title, category, amount, date, owner_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		card.Title, card.Category, card.Amount, card.Date, card.OwnerUID).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCard возвращает карточку по ID в пределах владельца.
// Чужая или отсутствующая карточка — один и тот же ErrExpenseNotFound.
func (s *Storage) GetCard(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	const op = "storage.GetCard"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + expenseColumns + `
			  FROM expense_cards
			  WHERE id = $1 AND owner_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, ownerUID)

	var card models.ExpenseCard
	if err := row.Scan(&card.ID, &card.Title, &card.Category, &card.Amount,
		&card.Date, &card.OwnerUID, &card.CreatedAt, &card.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpenseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &card, nil
}

// UpdateCard частично обновляет карточку в пределах владельца и
// возвращает её новое состояние. В запрос попадают только переданные
// поля патча, владелец карточки не меняется никогда.
func (s *Storage) UpdateCard(ctx context.Context, id, ownerUID string, patch models.ExpenseCardPatch) (*models.ExpenseCard, error) {
	const op = "storage.UpdateCard"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	builder := squirrel.
		Update("expense_cards").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "owner_uid": ownerUID}).
		Suffix("RETURNING " + expenseColumns).
		PlaceholderFormat(squirrel.Dollar)

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Category != nil {
		builder = builder.Set("category", *patch.Category)
	}
	if patch.Amount != nil {
		builder = builder.Set("amount", *patch.Amount)
	}
	if patch.Date != nil {
		builder = builder.Set("date", *patch.Date)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var card models.ExpenseCard
	if err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&card.ID, &card.Title, &card.Category, &card.Amount,
			&card.Date, &card.OwnerUID, &card.CreatedAt, &card.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpenseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &card, nil
}

// RemoveCard удаляет карточку в пределах владельца и возвращает её
// последнее состояние. Повторное удаление даёт ErrExpenseNotFound,
// а не внутреннюю ошибку.
func (s *Storage) RemoveCard(ctx context.Context, id, ownerUID string) (*models.ExpenseCard, error) {
	const op = "storage.RemoveCard"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM expense_cards
			  WHERE id = $1 AND owner_uid = $2
			  RETURNING ` + expenseColumns
	row := s.DB.QueryRowContext(ctx, query, id, ownerUID)

	var card models.ExpenseCard
	if err := row.Scan(&card.ID, &card.Title, &card.Category, &card.Amount,
		&card.Date, &card.OwnerUID, &card.CreatedAt, &card.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpenseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &card, nil
}

// ListCards возвращает карточки владельца по фильтру с сортировкой.
// SQL собирается динамически из типизированного фильтра, владелец
// присутствует в условии всегда.
func (s *Storage) ListCards(ctx context.Context, f models.ExpenseFilter) ([]*models.ExpenseCard, error) {
	const op = "storage.ListCards"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := buildListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpenseCard
	for rows.Next() {
		var card models.ExpenseCard
		if err := rows.Scan(&card.ID, &card.Title, &card.Category, &card.Amount,
			&card.Date, &card.OwnerUID, &card.CreatedAt, &card.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &card)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// buildListQuery переводит типизированный фильтр в SQL. Каждая граница
// диапазона добавляется независимо от парной, нулевая граница суммы —
// полноценное условие.
func buildListQuery(f models.ExpenseFilter) (string, []any, error) {
	builder := squirrel.
		Select("id", "title", "category", "amount", "date", "owner_uid", "created_at", "updated_at").
		From("expense_cards").
		Where(squirrel.Eq{"owner_uid": f.OwnerUID}).
		PlaceholderFormat(squirrel.Dollar)

	if f.Category != "" {
		builder = builder.Where(squirrel.Eq{"category": f.Category})
	}
	if f.MinAmount != nil {
		builder = builder.Where(squirrel.GtOrEq{"amount": *f.MinAmount})
	}
	if f.MaxAmount != nil {
		builder = builder.Where(squirrel.LtOrEq{"amount": *f.MaxAmount})
	}
	if f.MinDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": *f.MinDate})
	}
	if f.MaxDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": *f.MaxDate})
	}

	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}
	builder = builder.OrderBy(f.SortField + " " + direction)

	return builder.ToSql()
}

// TopCategoryBySpend группирует карточки владельца по категориям,
// суммирует расходы и возвращает категорию с максимальной суммой.
// Вторичная сортировка по имени категории делает результат
// детерминированным при равных суммах. Если карточек нет,
// возвращается (nil, nil) — это не ошибка.
func (s *Storage) TopCategoryBySpend(ctx context.Context, ownerUID string) (*models.CategorySum, error) {
	const op = "storage.TopCategoryBySpend"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT category, SUM(amount) AS total_amount
			  FROM expense_cards
			  WHERE owner_uid = $1
			  GROUP BY category
			  ORDER BY total_amount DESC, category ASC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, ownerUID)

	var result models.CategorySum
	if err := row.Scan(&result.Category, &result.TotalAmount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
