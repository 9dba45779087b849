// Package models содержит доменные структуры карточек расходов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// ExpenseCard представляет собой основную модель карточки расхода,
// используемую в бизнес-логике и хранилище. Каждая карточка принадлежит
// ровно одному пользователю (OwnerUID), все операции чтения и записи
// выполняются только в пределах этого владельца.
type ExpenseCard struct {
	ID        string    `json:"id"`         // Уникальный идентификатор карточки
	Title     string    `json:"title"`      // Название расхода
	Category  string    `json:"category"`   // Категория расхода
	Amount    float64   `json:"amount"`     // Сумма расхода
	Date      time.Time `json:"date"`       // Дата расхода
	OwnerUID  string    `json:"owner_uid"`  // Идентификатор владельца
	CreatedAt time.Time `json:"created_at"` // Дата создания записи
	UpdatedAt time.Time `json:"updated_at"` // Дата последнего изменения
}

// DummyExpenseCard используется для приёма данных из JSON-запроса
// на создание карточки. Дата приходит строкой в формате 2006-01-02,
// чтобы её можно было провалидировать и распарсить вручную.
type DummyExpenseCard struct {
	Title    string   `json:"title" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Amount   *float64 `json:"amount" validate:"required,gte=0"`
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateExpenseCard используется для частичного обновления карточки.
// Каждое поле — указатель: nil означает "поле не передано, не менять",
// поэтому нулевая сумма остаётся валидным обновлением.
type UpdateExpenseCard struct {
	Title    *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Category *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	Amount   *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Date     *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseCardPatch — типизированный частичный апдейт для слоя хранилища:
// дата уже распарсена, nil-поля в запрос не попадают.
type ExpenseCardPatch struct {
	Title    *string
	Category *string
	Amount   *float64
	Date     *time.Time
}

// CategorySum — результат агрегации расходов: категория с суммарной
// стоимостью всех карточек владельца в этой категории.
type CategorySum struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}
