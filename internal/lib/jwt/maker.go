// Package jwt реализует выпуск и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для выпуска пары access/refresh токенов
// и их проверки. MakerImpl — конкретная реализация на секретном ключе
// с раздельными сроками жизни для access и refresh токенов.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и парсинга JWT токенов.
//
// Access-токен короткоживущий и подтверждает личность в рамках запроса,
// refresh-токен долгоживущий и сохраняется на учётной записи как
// отметка активной сессии. Оба подписываются одним секретом.
type Maker interface {
	// GenerateAccessToken выпускает короткоживущий токен для userUID.
	GenerateAccessToken(userUID string) (string, error)
	// GenerateRefreshToken выпускает долгоживущий токен для userUID.
	GenerateRefreshToken(userUID string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и двух сроков жизни токенов.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов
	accessTTL  time.Duration // Время жизни access-токена
	refreshTTL time.Duration // Время жизни refresh-токена
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа
// и сроков жизни access/refresh токенов.
func NewMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
