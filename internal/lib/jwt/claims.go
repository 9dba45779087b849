package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Виды выпускаемых токенов.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string `json:"user_uid"` // Идентификатор пользователя
	Kind                 string `json:"kind"`     // Вид токена: access или refresh
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateAccessToken создает короткоживущий JWT для userUID,
// подписывая его секретным ключом. Время жизни определяется accessTTL.
func (j *MakerImpl) GenerateAccessToken(userUID string) (string, error) {
	return j.generate(userUID, KindAccess, j.accessTTL)
}

// GenerateRefreshToken создает долгоживущий JWT для userUID.
// Механизм подписи тот же, отличается только срок жизни.
func (j *MakerImpl) GenerateRefreshToken(userUID string) (string, error) {
	return j.generate(userUID, KindRefresh, j.refreshTTL)
}

func (j *MakerImpl) generate(userUID, kind string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		UserUID: userUID,
		Kind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает CustomClaims с данными, если токен корректен.
//
// Валидность токена целиком криптографическая: хранилище на этом
// уровне не опрашивается.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
