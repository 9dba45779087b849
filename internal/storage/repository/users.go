package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ansokolv/expense-cards/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Нарушение уникальности username или email возвращается как ErrDuplicate.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(&newUID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// FindByIdentifier возвращает пользователя по username и/или email.
//
// Предикат собирается только из переданных полей: пустое поле не
// попадает в дизъюнкцию вовсе. Наивный OR с пустым условием совпал бы
// с любым пользователем — именно этот класс запросов здесь исключён.
// Если не передано ни одного поля, возвращается ErrUserNotFound.
func (s *Storage) FindByIdentifier(ctx context.Context, username, email string) (*models.User, error) {
	const op = "storage.FindByIdentifier"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conditions squirrel.Or
	if username != "" {
		conditions = append(conditions, squirrel.Eq{"username": username})
	}
	if email != "" {
		conditions = append(conditions, squirrel.Eq{"email": email})
	}
	if len(conditions) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	query, args, err := squirrel.
		Select("uid", "username", "email", "password_hash", "refresh_token", "created_at", "updated_at").
		From("users").
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.scanUser(ctx, op, query, args...)
}

// GetActiveUser возвращает пользователя по UID, только если у него есть
// активная сессия: refresh_token не NULL. Удалённая учётная запись и
// завершённая сессия дают один и тот же ErrUserNotFound.
func (s *Storage) GetActiveUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetActiveUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, refresh_token, created_at, updated_at
			  FROM users
			  WHERE uid = $1 AND refresh_token IS NOT NULL`
	return s.scanUser(ctx, op, query, userUID)
}

// SetRefreshToken записывает refresh-токен пользователя. nil очищает
// поле — это единственный механизм серверного отзыва сессии.
func (s *Storage) SetRefreshToken(ctx context.Context, userUID string, token *string) error {
	const op = "storage.SetRefreshToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET refresh_token = $1, updated_at = now()
			  WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, token, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// DeleteUser удаляет учётную запись и возвращает её публичные данные.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) (*models.PublicUser, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users
			  WHERE uid = $1
			  RETURNING uid, username, email`
	var deleted models.PublicUser
	if err := s.DB.QueryRowContext(ctx, query, userUID).
		Scan(&deleted.UID, &deleted.Username, &deleted.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &deleted, nil
}

func (s *Storage) scanUser(ctx context.Context, op, query string, args ...any) (*models.User, error) {
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, args...)

	var refreshToken sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash,
		&refreshToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if refreshToken.Valid {
		u.RefreshToken = &refreshToken.String
	}
	return u, nil
}
