// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и карточками расходов. Предоставляет
// методы создания, чтения, обновления, удаления и агрегирования записей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисный слой переводит их в коды API.
var (
	// ErrUserNotFound — пользователь отсутствует либо не имеет активной сессии.
	ErrUserNotFound = errors.New("user not found")
	// ErrExpenseNotFound — карточка отсутствует либо принадлежит другому
	// пользователю. Эти случаи неразличимы намеренно.
	ErrExpenseNotFound = errors.New("expense card not found")
	// ErrDuplicate — нарушение уникальности username или email.
	ErrDuplicate = errors.New("duplicate key")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и карточками расходов.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// isUniqueViolation сообщает, является ли ошибка нарушением уникального
// ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
