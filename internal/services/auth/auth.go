// Package services содержит логику бизнес-уровня для работы с учётными
// записями и жизненным циклом сессии: регистрация, вход, выход,
// удаление и авторизация запроса по access-токену.
package services

import (
	"context"
	"errors"

	"github.com/ansokolv/expense-cards/internal/lib/jwt"
	"github.com/ansokolv/expense-cards/internal/lib/password"
	"github.com/ansokolv/expense-cards/internal/models"
	"github.com/ansokolv/expense-cards/internal/storage/repository"
)

// Ошибки сессионного жизненного цикла.
var (
	// ErrMissingIdentifier — в запросе входа нет ни username, ни email.
	ErrMissingIdentifier = errors.New("missing identifier")
	// ErrInvalidCredentials возвращается одинаково и для неизвестного
	// идентификатора, и для неверного пароля: различие позволило бы
	// перечислять учётные записи.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — подпись неверна, токен истёк или не парсится.
	ErrInvalidToken = errors.New("invalid token")
	// ErrSessionRevoked — токен криптографически валиден, но учётная
	// запись удалена либо сессия завершена. Случаи неразличимы намеренно.
	ErrSessionRevoked = errors.New("session revoked")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// FindByIdentifier возвращает пользователя по username и/или email,
	// строя предикат только из переданных полей.
	FindByIdentifier(ctx context.Context, username, email string) (*models.User, error)
	// GetActiveUser возвращает пользователя по UID только при живой сессии.
	GetActiveUser(ctx context.Context, userUID string) (*models.User, error)
	// SetRefreshToken записывает либо очищает (nil) refresh-токен.
	SetRefreshToken(ctx context.Context, userUID string, token *string) error
	// DeleteUser удаляет учётную запись и возвращает её публичные данные.
	DeleteUser(ctx context.Context, userUID string) (*models.PublicUser, error)
}

// LoginResult — итог успешного входа: пара токенов и публичные данные
// пользователя без хэша пароля и refresh-токена.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         models.PublicUser
}

// AuthService отвечает за регистрацию, вход, выход, удаление учётной
// записи и авторизацию запросов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает UID созданной записи.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет учётные данные и открывает сессию.
//
// Идентификатор — username или email, хотя бы один обязателен.
// При успехе выпускается пара токенов, refresh-токен сохраняется на
// учётной записи как отметка активной сессии.
func (s *AuthService) Login(ctx context.Context, username, email, rawPassword string) (*LoginResult, error) {
	if username == "" && email == "" {
		return nil, ErrMissingIdentifier
	}

	user, err := s.users.FindByIdentifier(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMaker.GenerateAccessToken(user.UID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMaker.GenerateRefreshToken(user.UID)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, user.UID, &refreshToken); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Logout очищает refresh-токен учётной записи. Этого одного
// присваивания достаточно для отзыва сессии: access-токен остаётся
// криптографически валидным до истечения, но Authorize его больше
// не примет.
func (s *AuthService) Logout(ctx context.Context, userUID string) error {
	return s.users.SetRefreshToken(ctx, userUID, nil)
}

// DeleteUser удаляет учётную запись и возвращает её публичные данные.
func (s *AuthService) DeleteUser(ctx context.Context, userUID string) (*models.PublicUser, error) {
	return s.users.DeleteUser(ctx, userUID)
}

// Authorize превращает access-токен в авторизованного пользователя.
//
// Токен проверяется криптографически, затем UID разрешается в учётную
// запись с живой сессией. Принимаются только токены вида access:
// долгоживущий refresh-токен не годится как удостоверение запроса,
// иначе короткий срок жизни access-токена терял бы смысл.
// Состояние при этом не изменяется.
func (s *AuthService) Authorize(ctx context.Context, token string) (*models.PublicUser, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Kind != jwt.KindAccess {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetActiveUser(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrSessionRevoked
		}
		return nil, err
	}

	public := user.Public()
	return &public, nil
}
